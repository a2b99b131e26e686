// Package tui implements the interactive chat assistant window.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/walletfy/walletfy/internal/common"
	"github.com/walletfy/walletfy/internal/llm"
	"github.com/walletfy/walletfy/internal/model"
	"github.com/walletfy/walletfy/internal/service"
	"github.com/walletfy/walletfy/internal/session"
)

const welcomeMessage = `¡Hola! Soy tu asistente financiero. Puedo ayudarte a analizar tus gastos e ingresos, crear nuevos eventos financieros y eliminar eventos existentes. ¿En qué puedo ayudarte hoy?`

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// Stream messages delivered from the completion goroutine.
type (
	deltaMsg  string
	doneMsg   string
	errMsg    struct{ err error }
	streamMsg = tea.Msg
)

// ChatModel is the bubbletea model for the chat assistant.
type ChatModel struct {
	store     service.EventStore
	client    llm.Client
	processor *session.Processor

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	messages []model.ChatMessage
	pending  *session.PendingDeletion
	events   []model.Event

	streamCh  chan streamMsg
	partial   string
	streaming bool
	ready     bool
	err       error
}

// NewChatModel builds the chat model and loads the persisted history.
func NewChatModel(store service.EventStore, client llm.Client, processor *session.Processor) (*ChatModel, error) {
	ctx := context.Background()

	messages, err := store.ListChatMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	events, err := store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	ta := textarea.New()
	ta.Placeholder = "Escribe tu consulta financiera..."
	ta.Prompt = "┃ "
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &ChatModel{
		store:     store,
		client:    client,
		processor: processor,
		textarea:  ta,
		spinner:   sp,
		messages:  messages,
		events:    events,
	}

	if len(m.messages) == 0 {
		m.appendAssistant(welcomeMessage)
	}

	return m, nil
}

// Init implements tea.Model.
func (m *ChatModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlL:
			return m, m.clearChat()
		case tea.KeyEnter:
			if !m.streaming {
				if cmd := m.submit(); cmd != nil {
					return m, tea.Batch(cmd, m.spinner.Tick)
				}
			}
		}

	case deltaMsg:
		m.partial += string(msg)
		m.refreshViewport()
		return m, tea.Batch(m.waitForStream(), m.spinner.Tick)

	case doneMsg:
		return m, m.finishStream(string(msg))

	case errMsg:
		m.streaming = false
		m.partial = ""
		m.err = fmt.Errorf("%w: %v", common.ErrChatFailed, msg.err)
		m.appendAssistant("Lo siento, ocurrió un error al procesar tu solicitud. Por favor, inténtalo de nuevo.")
		m.refreshViewport()

	case spinner.TickMsg:
		if m.streaming {
			var spCmd tea.Cmd
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, tea.Batch(taCmd, vpCmd, spCmd)
		}
	}

	return m, tea.Batch(taCmd, vpCmd)
}

// submit consumes the textarea content as one user turn.
func (m *ChatModel) submit() tea.Cmd {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return nil
	}
	m.textarea.Reset()
	m.err = nil

	// A pending deletion intercepts the reply before the LLM sees it.
	if outcome, handled := session.HandleUserReply(m.pending, input); handled {
		m.appendUser(input)
		m.applyOutcome(outcome)
		m.refreshViewport()
		return nil
	}

	m.appendUser(input)
	m.refreshViewport()
	return m.startStream()
}

// startStream launches the completion request and begins relaying deltas.
func (m *ChatModel) startStream() tea.Cmd {
	ctx := context.Background()

	initialBalance, err := m.store.GetInitialBalance(ctx)
	if err != nil {
		m.err = err
		initialBalance = 0
	}
	fc := llm.BuildFinancialContext(m.events, initialBalance, time.Now())

	apiMessages := make([]llm.Message, 0, len(m.messages)+1)
	apiMessages = append(apiMessages, llm.Message{Role: "system", Content: llm.BuildSystemPrompt(fc)})
	for _, msg := range m.messages {
		apiMessages = append(apiMessages, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	m.streaming = true
	m.partial = ""
	m.streamCh = make(chan streamMsg, 64)

	ch := m.streamCh
	client := m.client
	go func() {
		full, err := client.ChatStream(ctx, apiMessages, func(delta string) {
			ch <- deltaMsg(delta)
		})
		if err != nil {
			ch <- errMsg{err: err}
			return
		}
		ch <- doneMsg(full)
	}()

	return m.waitForStream()
}

func (m *ChatModel) waitForStream() tea.Cmd {
	ch := m.streamCh
	return func() tea.Msg {
		return <-ch
	}
}

// finishStream records the completed assistant reply and feeds it through
// the command processor. Commands only fire here, on the complete text,
// never on partial stream contents.
func (m *ChatModel) finishStream(full string) tea.Cmd {
	m.streaming = false
	m.partial = ""

	if full != "" {
		m.appendAssistant(full)

		if outcome, handled := m.processor.ProcessAssistantText(full, m.events, m.pending); handled {
			m.applyOutcome(outcome)
		}
	}

	m.refreshViewport()
	return nil
}

// applyOutcome performs the side effects a state-machine outcome describes
// and advances the pending state.
func (m *ChatModel) applyOutcome(outcome session.Outcome) {
	ctx := context.Background()

	switch outcome.Action {
	case session.ActionCreate:
		event := outcome.Event
		if err := event.Validate(); err == nil && m.store.AddEvent(ctx, *event) == nil {
			m.events = append(m.events, *event)
			m.appendAssistant(session.CreatedMessage(*event))
		} else {
			m.appendAssistant(session.CreateFailedMessage())
		}
		m.pending = outcome.Pending

	case session.ActionDelete:
		if err := m.store.DeleteEvent(ctx, outcome.EventID); err == nil {
			m.removeEvent(outcome.EventID)
			m.pending = nil
			m.appendAssistant(session.DeletedMessage(outcome.EventName))
		} else {
			m.pending = outcome.Pending
			m.appendAssistant(session.DeleteFailedMessage())
		}

	default:
		m.pending = outcome.Pending
		if outcome.Reply != "" {
			m.appendAssistant(outcome.Reply)
		}
	}
}

func (m *ChatModel) removeEvent(id string) {
	for i, event := range m.events {
		if event.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return
		}
	}
}

func (m *ChatModel) clearChat() tea.Cmd {
	if err := m.store.ClearChatMessages(context.Background()); err != nil {
		m.err = err
		return nil
	}
	m.messages = nil
	m.pending = nil
	m.appendAssistant(welcomeMessage)
	m.refreshViewport()
	return nil
}

func (m *ChatModel) appendUser(content string) {
	m.appendMessage(model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "user",
		Content:   content,
		Timestamp: time.Now(),
	})
}

func (m *ChatModel) appendAssistant(content string) {
	m.appendMessage(model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "assistant",
		Content:   content,
		Timestamp: time.Now(),
	})
}

func (m *ChatModel) appendMessage(msg model.ChatMessage) {
	m.messages = append(m.messages, msg)
	if err := m.store.SaveChatMessage(context.Background(), msg); err != nil {
		m.err = err
	}
}

func (m *ChatModel) resize(width, height int) {
	taHeight := m.textarea.Height() + 1
	vpHeight := height - taHeight - 4
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(width)
	m.refreshViewport()
}

func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, msg := range m.messages {
		if msg.Role == "user" {
			b.WriteString(userStyle.Render("Tú:") + " " + msg.Content + "\n\n")
		} else {
			b.WriteString(assistantStyle.Render("Asistente:") + " " + msg.Content + "\n\n")
		}
	}
	if m.streaming && m.partial != "" {
		b.WriteString(assistantStyle.Render("Asistente:") + " " + m.partial + "\n\n")
	}

	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(b.String()))
	m.viewport.GotoBottom()
}

// View implements tea.Model.
func (m *ChatModel) View() string {
	if !m.ready {
		return "Cargando..."
	}

	var status string
	switch {
	case m.streaming:
		status = m.spinner.View() + " Escribiendo..."
	case m.err != nil:
		status = errorStyle.Render(m.err.Error())
	default:
		status = helpStyle.Render("enter: enviar • ctrl+l: limpiar chat • esc: salir")
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		assistantStyle.Render("💰 Asistente Financiero"),
		m.viewport.View(),
		m.textarea.View(),
		status,
	)
}
