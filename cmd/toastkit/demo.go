package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/toastkit/cmd/toastkit/internal/config"
	"github.com/go-drift/toastkit/pkg/animation"
	terrors "github.com/go-drift/toastkit/pkg/errors"
	"github.com/go-drift/toastkit/pkg/termui"
	"github.com/go-drift/toastkit/pkg/toast"
)

const frameInterval = time.Second / 60

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type frameMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type demoModel struct {
	driver *animation.FrameDriver
	sched  *toast.Scheduler
	win    *termui.Window

	width  int
	height int
	shown  int
	status string
	err    error
}

func newDemoModel(cfg toast.Config, log zerolog.Logger) (*demoModel, error) {
	driver := animation.NewFrameDriver(nil)
	win := termui.NewWindow("demo")
	sched := toast.NewScheduler(driver,
		toast.WithRenderContext(win),
		toast.WithContainerFactory(termui.NewContainer),
		toast.WithLogger(log),
	)
	if err := sched.Apply(cfg); err != nil {
		return nil, err
	}
	return &demoModel{
		driver: driver,
		sched:  sched,
		win:    win,
		width:  80,
		height: 24,
	}, nil
}

func (m *demoModel) Init() tea.Cmd {
	return frame()
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.driver.Step()
		return m, frame()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

// reloadConfig hands a watcher result to the UI goroutine. It is applied on
// the next frame.
func (m *demoModel) reloadConfig(cfg *config.Config, err error) {
	m.driver.Post(func() {
		if err != nil {
			m.err = err
			return
		}
		m.err = m.sched.Apply(cfg.Toasts)
		if m.err == nil {
			m.status = "config reloaded"
		}
	})
}

func (m *demoModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		m.win.Close()
		return tea.Quit
	case "m":
		m.shown++
		m.sched.ShowMessage(fmt.Sprintf("Message #%d", m.shown), m.sched.DefaultTimeout())
	case "a":
		m.shown++
		t := m.sched.ShowMessageWithActions(fmt.Sprintf("Deleted item #%d", m.shown),
			[]toast.Action{{Label: "Undo", Data: "undo"}, {Label: "Dismiss", Data: "dismiss"}},
			m.sched.DefaultTimeout())
		t.OnClose(func(data any) {
			if data != nil {
				m.status = fmt.Sprintf("%s: %v", t.Message(), data)
			}
		})
	case "i":
		m.shown++
		m.sched.ShowMessage(fmt.Sprintf("Sticky #%d (press c)", m.shown), toast.Infinite)
	case "c":
		if t := m.newest(); t != nil {
			t.Close(true)
		}
	case "+":
		m.err = m.sched.SetMaxVisibleToasts(m.sched.MaxVisibleToasts() + 1)
	case "-":
		m.err = m.sched.SetMaxVisibleToasts(m.sched.MaxVisibleToasts() - 1)
	case "w":
		mode := toast.Wait
		if m.sched.QueueMode() == toast.Wait {
			mode = toast.CancelTimeout
		}
		m.err = m.sched.SetQueueMode(mode)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.trigger(int(key[0] - '1'))
		}
	}
	return nil
}

func (m *demoModel) newest() *toast.Toast {
	active := m.sched.ActiveToasts()
	if len(active) == 0 {
		return nil
	}
	return active[len(active)-1]
}

// trigger presses the i'th action button of the newest toast that has one.
func (m *demoModel) trigger(i int) {
	active := m.sched.ActiveToasts()
	for j := len(active) - 1; j >= 0; j-- {
		t := active[j]
		if g, ok := t.ActionGroup().(*toast.ButtonGroup); ok && g.Trigger(i) {
			return
		}
	}
}

func (m *demoModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("toastkit demo"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "max visible: %d   queue mode: %s   active: %d   queued: %d\n",
		m.sched.MaxVisibleToasts(), m.sched.QueueMode(),
		len(m.sched.ActiveToasts()), len(m.sched.QueuedToasts()))
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("m message  a with actions  i infinite  1-9 press action  c close newest\n+/- capacity  w toggle queue mode  q quit"))
	return m.win.View(b.String(), m.width, m.height)
}

func demoCmd() *cobra.Command {
	var (
		dir   string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Show toasts in an interactive terminal demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := config.Resolve(dir)
			if err != nil {
				return err
			}

			// The terminal belongs to the program; reported errors go to a file.
			logFile, err := os.CreateTemp("", "toastkit-demo-*.log")
			if err != nil {
				return err
			}
			defer logFile.Close()
			log := zerolog.New(logFile).With().Timestamp().Str("app", r.AppName).Logger()
			prev := terrors.SetHandler(terrors.NewLogHandler(log, true))
			defer terrors.SetHandler(prev)

			m, err := newDemoModel(r.Toasts, log)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen())

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if watch && r.File != "" {
				go func() {
					if err := config.Watch(ctx, r.File, m.reloadConfig); err != nil {
						m.reloadConfig(nil, err)
					}
				}()
			}

			_, err = p.Run()
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "log written to %s\n", logFile.Name())
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "directory holding toastkit.yaml or toastkit.toml")
	cmd.Flags().BoolVar(&watch, "watch", true, "re-apply the config file when it changes")

	return cmd
}
