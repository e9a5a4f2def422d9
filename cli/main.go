package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(1, 3)

	likeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	dislikeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	queue       Queue
	plan        Plan
	lastSwipe   *SwipeResult
	chatReply   string
	textInput   textinput.Model
	spinner     spinner.Model
	client      *ApiClient
	currentView string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := []list.Item{
		item{title: "Swipe Foods", desc: "Like or dislike today's dining hall foods"},
		item{title: "Meal Plan", desc: "View your assembled daily meal plan"},
		item{title: "Set Target", desc: "Set your daily caloric target"},
		item{title: "Ask Assistant", desc: "Ask the nutrition assistant a question"},
		item{title: "Reset Session", desc: "Clear all swipes and start over"},
		item{title: "Exit", desc: "Exit the application"},
	}

	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "MealSwipeRight CLI"

	ti := textinput.New()
	ti.Placeholder = "Type here..."
	ti.CharLimit = 156
	ti.Width = 40

	client := NewApiClient()

	return Model{
		mainMenu:    mainMenu,
		spinner:     s,
		textInput:   ti,
		client:      client,
		currentView: "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.currentView == "main" {
				return m, tea.Quit
			}
		case "enter":
			switch m.currentView {
			case "main":
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Swipe Foods":
						m.currentView = "swipe"
						m.error = ""
						return m, fetchQueue(m.client)
					case "Meal Plan":
						m.currentView = "plan"
						m.error = ""
						return m, fetchPlan(m.client)
					case "Set Target":
						m.currentView = "target"
						m.textInput.SetValue("")
						m.textInput.Placeholder = "Daily calories, e.g. 2000"
						m.textInput.Focus()
						return m, nil
					case "Ask Assistant":
						m.currentView = "chat"
						m.chatReply = ""
						m.textInput.SetValue("")
						m.textInput.Placeholder = "Ask about macros, meals, anything..."
						m.textInput.Focus()
						return m, nil
					case "Reset Session":
						return m, resetSession(m.client)
					}
				}
			case "target":
				return m, submitTarget(m.client, m.textInput.Value())
			case "chat":
				return m, sendChat(m.client, m.textInput.Value())
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
				m.textInput.Blur()
			}
		case "right", "l":
			if m.currentView == "swipe" && len(m.queue.Upcoming) > 0 {
				return m, swipe(m.client, "like")
			}
		case "left", "d":
			if m.currentView == "swipe" && len(m.queue.Upcoming) > 0 {
				return m, swipe(m.client, "dislike")
			}
		}
	case queueMsg:
		m.queue = msg.queue
		return m, nil
	case swipeMsg:
		m.lastSwipe = &msg.result
		return m, fetchQueue(m.client)
	case planMsg:
		m.plan = msg.plan
		return m, nil
	case chatMsg:
		m.chatReply = msg.reply
		m.textInput.SetValue("")
		return m, nil
	case confirmMsg:
		m.error = ""
		m.currentView = "main"
		m.textInput.Blur()
		return m, nil
	case errorMsg:
		m.error = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "target", "chat":
		m.textInput, cmd = m.textInput.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "swipe":
		return docStyle.Render(m.swipeView())
	case "plan":
		return docStyle.Render(planView(m.plan))
	case "target":
		view := titleStyle.Render("Set Caloric Target") + "\n\n" + m.textInput.View() + "\n\nPress 'enter' to save, 'esc' to go back\n"
		if m.error != "" {
			view += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(view)
	case "chat":
		view := titleStyle.Render("Nutrition Assistant") + "\n\n"
		if m.chatReply != "" {
			view += m.chatReply + "\n\n"
		}
		view += m.textInput.View() + "\n\nPress 'enter' to send, 'esc' to go back\n"
		if m.error != "" {
			view += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(view)
	default:
		return "Loading..."
	}
}

// swipeView renders the current food card with queue progress
func (m Model) swipeView() string {
	view := titleStyle.Render("Swipe Foods") + "\n\n"

	if m.queue.State == "exhausted" || len(m.queue.Upcoming) == 0 {
		view += "No more foods in the queue.\n"
		view += fmt.Sprintf("You liked %d foods this session.\n\n", m.queue.LikedCount)
		view += "Press 'esc' to go back\n"
		return view
	}

	food := m.queue.Upcoming[0]
	card := food.Name + "\n"
	card += fmt.Sprintf("%s · %s · %s\n\n", food.Location, food.Category, food.MealType)
	card += fmt.Sprintf("Calories: %s   Protein: %sg\n", orDash(food.Calories), orDash(food.Protein))
	card += fmt.Sprintf("Carbs: %sg   Fat: %sg", orDash(food.Carbs), orDash(food.Fat))
	if food.DietTypes != "" {
		card += "\n" + food.DietTypes
	}
	view += cardStyle.Render(card) + "\n\n"

	view += likeStyle.Render("→ / l  like") + "  " + dislikeStyle.Render("← / d  dislike") + "\n\n"
	view += fmt.Sprintf("Remaining: %d   Liked: %d\n", m.queue.Remaining, m.queue.LikedCount)

	if m.lastSwipe != nil && len(m.lastSwipe.AutoLiked) > 0 {
		names := make([]string, len(m.lastSwipe.AutoLiked))
		for i, f := range m.lastSwipe.AutoLiked {
			names[i] = fmt.Sprintf("%s (%s)", f.Name, f.Location)
		}
		view += "Auto-liked: " + strings.Join(names, ", ") + "\n"
	}
	if m.error != "" {
		view += errorStyle.Render(m.error) + "\n"
	}

	view += "\nPress 'esc' to go back"
	return view
}

// planView renders the assembled meal plan with totals against targets
func planView(plan Plan) string {
	view := titleStyle.Render("Meal Plan") + "\n\n"

	if len(plan.Foods) == 0 {
		view += "No plan yet. Like some foods and set a caloric target first.\n\n"
		view += "Press 'esc' to go back"
		return view
	}

	for i, entry := range plan.Foods {
		marker := " "
		if entry.Reason == "liked" {
			marker = likeStyle.Render("♥")
		}
		view += fmt.Sprintf("%d. %s %s (%s) - %s cal, %sg protein\n",
			i+1, marker, entry.Food.Name, entry.Food.Location,
			orDash(entry.Food.Calories), orDash(entry.Food.Protein))
	}

	view += fmt.Sprintf("\nTotals:  %d cal, %dg protein, %dg carbs, %dg fat\n",
		plan.Totals.Calories, plan.Totals.ProteinG, plan.Totals.CarbsG, plan.Totals.FatG)
	view += fmt.Sprintf("Targets: %d cal, %dg protein, %dg carbs, %dg fat\n",
		plan.Targets.Calories, plan.Targets.ProteinG, plan.Targets.CarbsG, plan.Targets.FatG)

	view += "\nPress 'esc' to go back"
	return view
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Custom message types for the tea.Model
type queueMsg struct {
	queue Queue
}

type swipeMsg struct {
	result SwipeResult
}

type planMsg struct {
	plan Plan
}

type chatMsg struct {
	reply string
}

type errorMsg struct {
	err string
}

type confirmMsg struct {
	message string
}

// fetchQueue retrieves the swipe queue from the API
func fetchQueue(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		queue, err := client.GetQueue()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching queue: %v", err)}
		}
		return queueMsg{queue: *queue}
	}
}

// swipe records a like or dislike
func swipe(client *ApiClient, direction string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Swipe(direction)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error swiping: %v", err)}
		}
		return swipeMsg{result: *result}
	}
}

// fetchPlan retrieves the meal plan
func fetchPlan(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		plan, err := client.GetPlan()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching plan: %v", err)}
		}
		return planMsg{plan: *plan}
	}
}

// submitTarget parses and saves a caloric target
func submitTarget(client *ApiClient, input string) tea.Cmd {
	return func() tea.Msg {
		calories, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return errorMsg{err: "Please enter a whole number of calories"}
		}
		if err := client.SetTarget(calories); err != nil {
			return errorMsg{err: fmt.Sprintf("Error setting target: %v", err)}
		}
		return confirmMsg{message: "Target saved"}
	}
}

// sendChat sends a message to the assistant
func sendChat(client *ApiClient, message string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(message) == "" {
			return errorMsg{err: "Please enter a question"}
		}
		reply, err := client.Chat(message)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error talking to assistant: %v", err)}
		}
		return chatMsg{reply: reply}
	}
}

// resetSession clears the swipe session
func resetSession(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		if err := client.ResetSession(); err != nil {
			return errorMsg{err: fmt.Sprintf("Error resetting session: %v", err)}
		}
		return confirmMsg{message: "Session reset"}
	}
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
