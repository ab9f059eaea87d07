package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vocabmaster/vocabmaster/internal/chart"
	"github.com/vocabmaster/vocabmaster/internal/core"
	"github.com/vocabmaster/vocabmaster/internal/vocab"
)

type view int

const (
	viewMenu view = iota
	viewMessage
	viewPreview
	viewQuestion
	viewFeedback
	viewResult
	viewAddEnglish
	viewAddGerman
	viewImport
	viewConfirmReset
	viewConfirmExit
	viewChart
)

const appTitle = "VocabMaster 🇩🇪"

var menuItems = []string{
	"Start Quiz",
	"View Progress Chart",
	"Add New Word",
	"Import Word List",
	"Reset Data",
	"Exit",
}

const (
	menuQuiz = iota
	menuChart
	menuAdd
	menuImport
	menuReset
	menuExit
)

type messageKind int

const (
	messageInfo messageKind = iota
	messageSuccess
	messageWarning
	messageError
)

// suggestionMsg carries the result of an async translation lookup
type suggestionMsg struct {
	english     string
	translation string
	err         error
}

type model struct {
	view     view
	cursor   int
	trainer  *core.Trainer
	aiReady  bool
	quiz     *core.Quiz
	feedback core.AnswerResult
	result   core.QuizResult
	english  string
	input    textinput.Model
	spinner  spinner.Model
	loading  bool
	width    int

	messageTitle string
	messageBody  string
	messageKind  messageKind

	// statusErr is shown below the current screen without leaving it
	statusErr error
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	normalStyle = lipgloss.NewStyle()

	hintStyle = lipgloss.NewStyle().
			Faint(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

func newModel(trainer *core.Trainer, warning string, aiReady bool) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := model{
		view:    viewMenu,
		trainer: trainer,
		aiReady: aiReady,
		input:   textinput.New(),
		spinner: s,
		width:   80,
	}
	if warning != "" {
		m = m.showMessage(messageWarning, "Data Error", warning)
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case suggestionMsg:
		m.loading = false
		if m.view != viewAddGerman || msg.english != m.english {
			return m, nil
		}
		if msg.err != nil {
			m.statusErr = msg.err
			return m, nil
		}
		m.statusErr = nil
		m.input.SetValue(msg.translation)
		m.input.CursorEnd()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			_ = m.trainer.Flush()
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.isInputView() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) isInputView() bool {
	switch m.view {
	case viewQuestion, viewAddEnglish, viewAddGerman, viewImport:
		return true
	}
	return false
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.view {
	case viewMenu:
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case "enter":
			return m.handleMenuSelection()
		case "q", "esc":
			return m.startExit()
		}
		return m, nil

	case viewMessage, viewResult, viewChart:
		switch key {
		case "enter", "esc", "q":
			return m.toMenu(), nil
		}
		return m, nil

	case viewPreview:
		switch key {
		case "y", "enter":
			return m.nextQuestion()
		case "n", "esc", "q":
			m.quiz = nil
			return m.toMenu(), nil
		}
		return m, nil

	case viewFeedback:
		if key == "enter" {
			if m.quiz.Done() {
				return m.finishQuiz()
			}
			return m.nextQuestion()
		}
		return m, nil

	case viewConfirmReset:
		switch key {
		case "y":
			if err := m.trainer.Reset(); err != nil {
				return m.showMessage(messageError, "Error", "Could not save data: "+err.Error()), nil
			}
			return m.showMessage(messageSuccess, "Reset", "All data has been reset!"), nil
		case "n", "esc", "q":
			return m.toMenu(), nil
		}
		return m, nil

	case viewConfirmExit:
		switch key {
		case "y", "enter":
			return m, tea.Quit
		case "n", "esc", "q":
			return m.toMenu(), nil
		}
		return m, nil
	}

	// input views
	switch key {
	case "esc":
		if m.view == viewQuestion {
			m.quiz.Abort()
			return m.finishQuiz()
		}
		return m.toMenu(), nil
	case "enter":
		return m.handleInputSubmission()
	case "tab":
		if m.view == viewAddGerman {
			return m.requestSuggestion()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleMenuSelection() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case menuQuiz:
		quiz, err := m.trainer.StartQuiz()
		if errors.Is(err, core.ErrNoVocabulary) {
			return m.showMessage(messageInfo, "Info", "No vocabulary available. Add words first."), nil
		}
		if err != nil {
			return m.showMessage(messageError, "Error", err.Error()), nil
		}
		m.quiz = quiz
		m.statusErr = nil
		m.view = viewPreview
		return m, nil

	case menuChart:
		if len(m.trainer.Vocabulary()) == 0 {
			return m.showMessage(messageInfo, "Info", chart.EmptyText), nil
		}
		m.view = viewChart
		return m, nil

	case menuAdd:
		m.english = ""
		m.statusErr = nil
		return m.focusInput(viewAddEnglish, "Enter English word")

	case menuImport:
		return m.focusInput(viewImport, "Enter file path (.txt, .pdf or .docx)")

	case menuReset:
		m.view = viewConfirmReset
		return m, nil

	case menuExit:
		return m.startExit()
	}

	return m, nil
}

func (m model) handleInputSubmission() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.view {
	case viewQuestion:
		result, err := m.quiz.Answer(value)
		if errors.Is(err, core.ErrQuizFinished) {
			return m.finishQuiz()
		}
		m.statusErr = err
		m.feedback = result
		m.input.Reset()
		m.input.Blur()
		m.view = viewFeedback
		return m, nil

	case viewAddEnglish:
		m.english = value
		return m.focusInput(viewAddGerman, "Enter German translation")

	case viewAddGerman:
		english := m.english
		m.input.Reset()
		m.input.Blur()
		if err := m.trainer.AddWord(english, value); err != nil {
			if errors.Is(err, vocab.ErrEmptyField) {
				return m.showMessage(messageWarning, "Error", "Both fields required."), nil
			}
			return m.showMessage(messageError, "Error", "Could not save data: "+err.Error()), nil
		}
		return m.showMessage(messageSuccess, "Success",
			fmt.Sprintf("Added '%s' → '%s'", strings.TrimSpace(english), strings.TrimSpace(value))), nil

	case viewImport:
		m.input.Reset()
		m.input.Blur()
		result, err := m.trainer.Import(strings.TrimSpace(value))
		if err != nil && result == nil {
			return m.showMessage(messageError, "Import Failed", err.Error()), nil
		}
		body := fmt.Sprintf("New words added: %d\nExisting words skipped: %d\nTotal processed: %d",
			result.NewWords, result.SkippedExisting, result.TotalProcessed)
		if err != nil {
			return m.showMessage(messageWarning, "Imported", body+"\n\nCould not save data: "+err.Error()), nil
		}
		return m.showMessage(messageSuccess, "Imported", body), nil
	}

	return m, nil
}

func (m model) requestSuggestion() (tea.Model, tea.Cmd) {
	if !m.aiReady {
		m.statusErr = core.ErrNoTranslator
		return m, nil
	}
	if m.loading {
		return m, nil
	}

	m.loading = true
	m.statusErr = nil
	trainer := m.trainer
	english := m.english
	lookup := func() tea.Msg {
		translation, err := trainer.SuggestTranslation(english)
		return suggestionMsg{english: english, translation: translation, err: err}
	}
	return m, tea.Batch(lookup, m.spinner.Tick)
}

func (m model) nextQuestion() (tea.Model, tea.Cmd) {
	m.statusErr = nil
	if _, ok := m.quiz.Current(); !ok {
		return m.finishQuiz()
	}
	return m.focusInput(viewQuestion, "German translation")
}

func (m model) finishQuiz() (tea.Model, tea.Cmd) {
	result, err := m.quiz.Finish()
	if err != nil {
		m.statusErr = err
	}
	m.result = result
	m.quiz = nil
	m.input.Reset()
	m.input.Blur()
	m.view = viewResult
	return m, nil
}

func (m model) startExit() (tea.Model, tea.Cmd) {
	m.statusErr = m.trainer.Flush()
	m.view = viewConfirmExit
	return m, nil
}

func (m model) focusInput(v view, placeholder string) (tea.Model, tea.Cmd) {
	m.view = v
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
	return m, textinput.Blink
}

func (m model) showMessage(kind messageKind, title, body string) model {
	m.view = viewMessage
	m.messageKind = kind
	m.messageTitle = title
	m.messageBody = body
	return m
}

func (m model) toMenu() model {
	m.view = viewMenu
	m.cursor = 0
	m.statusErr = nil
	m.loading = false
	m.input.Reset()
	m.input.Blur()
	return m
}

func (m model) View() string {
	switch m.view {
	case viewMessage:
		return m.renderMessage()
	case viewPreview:
		return m.renderPreview()
	case viewQuestion:
		return m.renderQuestion()
	case viewFeedback:
		return m.renderFeedback()
	case viewResult:
		return m.renderResult()
	case viewAddEnglish, viewAddGerman, viewImport:
		return m.renderInput()
	case viewConfirmReset:
		return m.renderConfirm("Confirm", "Reset all vocabulary data?")
	case viewConfirmExit:
		return m.renderConfirm("Exit", "Do you want to save and exit?")
	case viewChart:
		return m.renderChart()
	}
	return m.renderMenu()
}

func (m model) renderMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(appTitle))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if m.cursor == i {
			s.WriteString(selectedStyle.Render("> " + item))
		} else {
			s.WriteString(normalStyle.Render("  " + item))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n\n")
	s.WriteString(hintStyle.Render("Use ↑/↓ arrows or j/k to navigate, Enter to select, q to quit"))

	return menuStyle.Render(s.String())
}

func (m model) renderMessage() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.messageTitle))
	s.WriteString("\n\n")

	switch m.messageKind {
	case messageSuccess:
		s.WriteString(successStyle.Render(m.messageBody))
	case messageWarning:
		s.WriteString(warningStyle.Render(m.messageBody))
	case messageError:
		s.WriteString(errorStyle.Render(m.messageBody))
	default:
		s.WriteString(m.messageBody)
	}

	s.WriteString("\n\n")
	s.WriteString(hintStyle.Render("Press Enter to return to menu"))

	return menuStyle.Render(s.String())
}

func (m model) renderPreview() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Quiz Preview"))
	s.WriteString("\n\n")
	s.WriteString("Today's quiz will include these words:\n\n")
	for _, item := range m.quiz.Preview() {
		s.WriteString(fmt.Sprintf("• %s → %s\n", item.Word, item.Translation))
	}
	s.WriteString("\nStart quiz? (y/n)")

	return menuStyle.Render(s.String())
}

func (m model) renderQuestion() string {
	var s strings.Builder

	word, _ := m.quiz.Current()
	s.WriteString(titleStyle.Render(fmt.Sprintf("Quiz %d/%d", m.quiz.Number(), m.quiz.Len())))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("What is the German word for '%s'?", word))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")
	s.WriteString(hintStyle.Render("Press Enter to answer, Esc to stop the quiz"))

	return menuStyle.Render(s.String())
}

func (m model) renderFeedback() string {
	var s strings.Builder

	if m.feedback.Correct {
		s.WriteString(titleStyle.Render("Correct!"))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render(fmt.Sprintf("✅ Correct! '%s' → '%s'", m.feedback.Word, m.feedback.Expected)))
	} else {
		s.WriteString(titleStyle.Render("Incorrect"))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("❌ Wrong! Correct: '%s'", m.feedback.Expected)))
	}
	s.WriteString(fmt.Sprintf("\nMastery: %d/%d", m.feedback.Score, vocab.MaxScore))
	m.writeStatus(&s)

	s.WriteString("\n\n")
	s.WriteString(hintStyle.Render("Press Enter to continue"))

	return menuStyle.Render(s.String())
}

func (m model) renderResult() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Quiz Result"))
	s.WriteString("\n\n")
	s.WriteString(successStyle.Render(m.result.String()))
	m.writeStatus(&s)

	s.WriteString("\n\n")
	s.WriteString(hintStyle.Render("Press Enter to return to menu"))

	return menuStyle.Render(s.String())
}

func (m model) renderInput() string {
	var s strings.Builder

	title := "Add Word"
	hint := "Press Enter to submit, Esc to cancel"
	switch m.view {
	case viewAddEnglish:
		s.WriteString(titleStyle.Render(title))
		s.WriteString("\n\nEnter English word:\n\n")
	case viewAddGerman:
		s.WriteString(titleStyle.Render(title))
		s.WriteString(fmt.Sprintf("\n\nEnter German translation for '%s':\n\n", strings.TrimSpace(m.english)))
		if m.aiReady {
			hint = "Press Enter to submit, Tab to suggest a translation, Esc to cancel"
		}
	case viewImport:
		s.WriteString(titleStyle.Render("Import Word List"))
		s.WriteString("\n\nOne pair per line, e.g. \"dog = hund\"\n\n")
	}

	s.WriteString(m.input.View())
	if m.loading {
		s.WriteString("\n\n")
		s.WriteString(m.spinner.View())
		s.WriteString(" Asking Claude for a translation...")
	}
	m.writeStatus(&s)

	s.WriteString("\n\n")
	s.WriteString(hintStyle.Render(hint))

	return menuStyle.Render(s.String())
}

func (m model) renderConfirm(title, question string) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n\n")
	s.WriteString(question)
	s.WriteString(" (y/n)")
	m.writeStatus(&s)

	return menuStyle.Render(s.String())
}

func (m model) renderChart() string {
	var s strings.Builder

	v := m.trainer.Vocabulary()
	s.WriteString(chart.Render(chart.Bars(v), m.width-4))

	summary := v.Summary()
	s.WriteString(fmt.Sprintf("\n\nWords: %d  Mastered: %d  Average: %.1f",
		summary.Total, summary.Mastered, summary.Average))

	s.WriteString("\n\n")
	s.WriteString(hintStyle.Render("Press Enter to return to menu"))

	return menuStyle.Render(s.String())
}

func (m model) writeStatus(s *strings.Builder) {
	if m.statusErr == nil {
		return
	}
	s.WriteString("\n\n")
	s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.statusErr)))
}
