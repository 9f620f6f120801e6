package review

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amberin/jobradar/internal/model"
	"github.com/amberin/jobradar/internal/pipeline"
)

// Lines per job item in the list view (title + subtitle + blank separator).
const jobItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedJobTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedJobSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	scoreHighStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	scoreMidStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	scoreLowStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(12)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	descBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

type reviewModel struct {
	result   pipeline.RunResult
	viewport viewport.Model
	cursor   int
	width    int
	height   int
	ready    bool

	view           viewState
	detailViewport viewport.Model
}

// Run opens the results browser for the given run.
func Run(result pipeline.RunResult) error {
	m := reviewModel{result: result}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m reviewModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "o":
		if job, ok := m.selectedJob(); ok {
			openURL(job.URL)
		}
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	// Forward other keys (pgup/pgdn/home/end) to the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m reviewModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		if job, ok := m.selectedJob(); ok {
			openURL(job.URL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *reviewModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.result.Jobs)-1, 0))
	m.viewport.SetContent(m.renderJobs())
	m.ensureCursorVisible()
}

func (m *reviewModel) ensureCursorVisible() {
	cursorTop := m.cursor * jobItemHeight
	cursorBottom := cursorTop + jobItemHeight - 1

	if cursorTop < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorTop)
	} else if cursorBottom >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursorBottom - m.viewport.Height + 1)
	}
}

func (m reviewModel) selectedJob() (model.AnalyzedJob, bool) {
	if len(m.result.Jobs) == 0 {
		return model.AnalyzedJob{}, false
	}
	return m.result.Jobs[m.cursor], true
}

func (m reviewModel) openDetailView() (tea.Model, tea.Cmd) {
	if _, ok := m.selectedJob(); !ok {
		return m, nil
	}
	m.view = viewDetail
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m *reviewModel) recalcLayout() {
	// Header (1) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	width := max(m.width-2, 20)
	height := max(m.height-4, 5)

	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.viewport.SetContent(m.renderJobs())
}

func (m reviewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m reviewModel) viewList() string {
	header := headerStyle.Render(fmt.Sprintf(" Scored Jobs (%d) — run %s",
		len(m.result.Jobs),
		m.result.RanAt.Local().Format("Mon 02 Jan 15:04"),
	))
	pane := borderStyle.Width(m.viewport.Width).Render(m.viewport.View())
	status := statusBarStyle.Width(m.width).Render("↑/↓ move · enter details · o open · q quit")
	return header + "\n" + pane + "\n" + status
}

func (m reviewModel) viewDetail() string {
	pane := borderStyle.Width(m.width - 2).Render(m.detailViewport.View())
	status := statusBarStyle.Width(m.width).Render("esc back · o open in browser · q quit")
	return pane + "\n" + status
}

func (m reviewModel) renderJobs() string {
	if len(m.result.Jobs) == 0 {
		return "No scored jobs in the last run."
	}

	var b strings.Builder
	for i, job := range m.result.Jobs {
		titleLine := fmt.Sprintf("%s  %s", scoreBadge(job.Score), job.Title)
		subtitle := fmt.Sprintf("   %s · %s", job.Company, job.Source)

		if i == m.cursor {
			b.WriteString(selectedJobTitleStyle.Render(titleLine) + "\n")
			b.WriteString(selectedJobSubtitleStyle.Render(subtitle) + "\n")
		} else {
			b.WriteString(jobTitleStyle.Render(titleLine) + "\n")
			b.WriteString(jobSubtitleStyle.Render(subtitle) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m reviewModel) renderDetail() string {
	job, ok := m.selectedJob()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(job.Title) + "\n")
	b.WriteString(detailLabelStyle.Render("Score") + scoreBadge(job.Score) + "\n")
	b.WriteString(detailLabelStyle.Render("Company") + job.Company + "\n")
	b.WriteString(detailLabelStyle.Render("Source") + string(job.Source) + "\n")
	b.WriteString(detailLabelStyle.Render("Posted") + job.PostedAt.Local().Format("Mon, 02 Jan 2006 15:04") + "\n")
	b.WriteString(detailLabelStyle.Render("URL") + job.URL + "\n\n")
	b.WriteString(detailLabelStyle.Render("Reason") + "\n")
	b.WriteString(descBodyStyle.Render(job.Reason) + "\n")

	if job.Description != "" {
		b.WriteString("\n" + detailLabelStyle.Render("Description") + "\n")
		b.WriteString(descBodyStyle.Render(job.Description) + "\n")
	}
	return b.String()
}

func scoreBadge(score int) string {
	text := fmt.Sprintf("%2d/10", score)
	switch {
	case score >= 8:
		return scoreHighStyle.Render(text)
	case score >= 5:
		return scoreMidStyle.Render(text)
	default:
		return scoreLowStyle.Render(text)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default browser, best effort.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
