package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetrainer"
	"github.com/SeamusWaldron/cubetrainer/internal/smartcube"
	"github.com/SeamusWaldron/cubetrainer/internal/storage"
	"github.com/SeamusWaldron/cubetrainer/internal/trainer"
)

var (
	drillMode   string
	drillDelay  time.Duration
	drillDevice bool
)

var drillCmd = &cobra.Command{
	Use:   "drill <algorithm-id>",
	Short: "Practise an algorithm interactively",
	Long: `Start an interactive drill. The cube is scrambled so that the algorithm
solves it; make the algorithm's moves one at a time.

Keyboard:
  u d l r f b   - clockwise turn
  U D L R F B   - counter-clockwise turn
  :             - type moves (e.g. "R2 U'"), Enter to play them
  ?             - hint
  p             - play a demo of the algorithm
  n             - new attempt
  q/Esc         - quit

With --device, moves come from a GoCube smart cube as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runDrill,
}

func init() {
	drillCmd.Flags().StringVarP(&drillMode, "mode", "m", "", "training or exam (default from CUBETRAINER_MODE)")
	drillCmd.Flags().DurationVar(&drillDelay, "delay", -1, "Move animation delay (default from CUBETRAINER_ANIM_DELAY)")
	drillCmd.Flags().BoolVar(&drillDevice, "device", false, "Read moves from a GoCube smart cube")
	rootCmd.AddCommand(drillCmd)
}

// Messages
type tickMsg time.Time
type commitMsg struct{ gen int }
type deviceMovesMsg struct{ moves []cubetrainer.Move }

// halfTurnJoiner pairs two identical quarter turns from a smart cube into
// the half turn the algorithm expects next.
type halfTurnJoiner struct {
	held *cubetrainer.Move
}

func (j *halfTurnJoiner) feed(m cubetrainer.Move, expected cubetrainer.Move, expecting bool) []cubetrainer.Move {
	var out []cubetrainer.Move
	if j.held != nil {
		held := *j.held
		j.held = nil
		if held == m {
			return []cubetrainer.Move{{Face: m.Face, Turn: cubetrainer.Half}}
		}
		out = append(out, held)
	}

	if expecting && expected.Turn == cubetrainer.Half && m.Face == expected.Face && m.Turn != cubetrainer.Half {
		j.held = &m
		return out
	}
	return append(out, m)
}

func (j *halfTurnJoiner) reset() { j.held = nil }

// Model
type drillModel struct {
	session  *trainer.Session
	attempts *storage.AttemptRepository
	log      *logrus.Entry
	delay    time.Duration
	policy   cubetrainer.ParsePolicy
	color    bool

	// Smart cube
	client     *smartcube.Client
	deviceName string
	joiner     halfTurnJoiner
	undo       []cubetrainer.Move // inverse of wrong device moves, last first

	// Moves waiting for the in-flight one to land.
	queue []cubetrainer.Move

	// gen is bumped whenever the attempt restarts; commits scheduled before
	// that are dropped.
	gen int

	typing bool
	input  string

	status  string
	isError bool
	saved   bool
	err     error

	quitting bool
}

func newDrillModel(session *trainer.Session, attempts *storage.AttemptRepository, log *logrus.Entry, delay time.Duration) *drillModel {
	return &drillModel{
		session:  session,
		attempts: attempts,
		log:      log,
		delay:    delay,
		policy:   cubetrainer.DefaultParsePolicy(),
		color:    true,
	}
}

func (m *drillModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *drillModel) tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// commitLater lands the in-flight move after the animation delay.
func (m *drillModel) commitLater() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return commitMsg{gen: gen}
	})
}

// keyMoves maps single keys to moves: lowercase clockwise, uppercase
// counter-clockwise.
var keyMoves = func() map[string]cubetrainer.Move {
	keys := make(map[string]cubetrainer.Move, 12)
	for _, f := range cubetrainer.Faces {
		letter := f.String()
		keys[strings.ToLower(letter)] = cubetrainer.Move{Face: f, Turn: cubetrainer.CW}
		keys[letter] = cubetrainer.Move{Face: f, Turn: cubetrainer.CCW}
	}
	return keys
}()

func (m *drillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			return m, m.updateTyping(msg)
		}

		if mv, ok := keyMoves[msg.String()]; ok {
			return m, m.play(mv)
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.saveAttempt()
			if m.client != nil {
				m.client.Disconnect()
			}
			return m, tea.Quit

		case ":":
			m.typing = true
			m.input = ""

		case "?":
			if hint, ok := m.session.Hint(); ok {
				m.setStatus(fmt.Sprintf("Next: %s", hint.Notation()))
			}

		case "p":
			return m, m.startDemo()

		case "n":
			m.saveAttempt()
			m.reset()
			m.setStatus("New attempt")
		}

	case tickMsg:
		return m, m.tickCmd()

	case commitMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, m.commit()

	case deviceMovesMsg:
		return m, m.deviceMoves(msg.moves)
	}

	return m, nil
}

func (m *drillModel) updateTyping(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.typing = false
		m.input = ""
	case tea.KeyEnter:
		m.typing = false
		moves := m.policy.Parse(m.input)
		m.input = ""
		if len(moves) == 0 {
			m.setError("No moves recognised")
			return nil
		}
		m.queue = append(m.queue, moves[1:]...)
		return m.play(moves[0])
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return nil
}

// play submits a move, or queues it behind the one in flight.
func (m *drillModel) play(mv cubetrainer.Move) tea.Cmd {
	if m.session.Demoing() {
		m.setError("Demo playing")
		return nil
	}
	if m.session.Busy() {
		m.queue = append(m.queue, mv)
		return nil
	}

	fb, err := m.session.Submit(mv)
	if err != nil {
		m.setError(err.Error())
		return nil
	}

	switch fb.Verdict {
	case trainer.VerdictWrong:
		m.queue = nil
		if m.session.Mode() == trainer.ModeExam {
			m.setError(fmt.Sprintf("✗ %s", mv.Notation()))
		} else {
			m.setError(fmt.Sprintf("✗ %s, expected %s", mv.Notation(), fb.Expected.Notation()))
		}
		return nil
	case trainer.VerdictFree:
		m.setStatus(fmt.Sprintf("Free play: %s", mv.Notation()))
	default:
		m.setStatus(fmt.Sprintf("✓ %s", mv.Notation()))
	}
	return m.commitLater()
}

func (m *drillModel) commit() tea.Cmd {
	fb, err := m.session.Commit()
	if err != nil {
		if !errors.Is(err, trainer.ErrNoPendingMove) {
			m.err = err
		}
		return nil
	}

	if fb.Verdict == trainer.VerdictDemo {
		return m.nextDemoMove()
	}

	if fb.Completed {
		m.queue = nil
		m.setStatus(fmt.Sprintf("Solved in %s  %s", formatDuration(fb.Elapsed), formatStars(fb.Stars)))
		m.saveAttempt()
		return nil
	}

	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return m.play(next)
	}
	return nil
}

func (m *drillModel) startDemo() tea.Cmd {
	m.saveAttempt()
	if err := m.session.StartDemo(); err != nil {
		m.setError(err.Error())
		return nil
	}
	m.gen++
	m.queue = nil
	m.saved = false
	m.joiner.reset()
	m.undo = nil
	m.setStatus("Demo")
	return m.nextDemoMove()
}

func (m *drillModel) nextDemoMove() tea.Cmd {
	mv, ok := m.session.NextDemoMove()
	if !ok {
		m.setStatus("Demo finished. Press n to try it yourself")
		return nil
	}
	m.setStatus(fmt.Sprintf("Demo: %s", mv.Notation()))
	return m.commitLater()
}

// deviceMoves handles turns made on the smart cube. Wrong turns are not
// resubmitted; the trainee is asked to undo them on the cube first.
func (m *drillModel) deviceMoves(moves []cubetrainer.Move) tea.Cmd {
	var cmds []tea.Cmd
	for _, mv := range moves {
		m.log.WithField("move", mv.Notation()).Debug("device move")

		if len(m.undo) > 0 {
			if mv == m.undo[0] {
				m.undo = m.undo[1:]
			} else {
				m.undo = append([]cubetrainer.Move{mv.Inverse()}, m.undo...)
			}
			m.showUndo()
			continue
		}

		expected, expecting := m.upcoming()
		for _, joined := range m.joiner.feed(mv, expected, expecting) {
			if m.session.Busy() {
				m.queue = append(m.queue, joined)
				continue
			}
			before := m.session.Attempt().Mistakes
			cmds = append(cmds, m.play(joined))
			if m.session.Attempt().Mistakes > before {
				m.undo = []cubetrainer.Move{joined.Inverse()}
				m.showUndo()
			}
		}
	}
	return tea.Batch(cmds...)
}

// upcoming returns the expected move after the in-flight and queued ones.
func (m *drillModel) upcoming() (cubetrainer.Move, bool) {
	i := m.session.Step() + len(m.queue)
	if _, ok := m.session.Pending(); ok {
		i++
	}
	moves := m.session.Algorithm().Moves
	if i >= len(moves) {
		return cubetrainer.Move{}, false
	}
	return moves[i], true
}

func (m *drillModel) showUndo() {
	if len(m.undo) == 0 {
		m.setStatus("Back on track")
		return
	}
	m.setError(fmt.Sprintf("Undo on the cube: %s", cubetrainer.FormatMoves(m.undo)))
}

func (m *drillModel) reset() {
	m.session.Reset()
	m.gen++
	m.queue = nil
	m.saved = false
	m.joiner.reset()
	m.undo = nil
}

// saveAttempt stores the current attempt once, if the trainee made a move.
func (m *drillModel) saveAttempt() {
	a := m.session.Attempt()
	if m.saved || m.attempts == nil || a.Moves == 0 && a.Mistakes == 0 || m.session.Demoing() {
		return
	}
	if !m.session.Started() {
		return
	}

	id, err := m.attempts.Create(a, m.deviceName)
	if err != nil {
		m.err = err
		return
	}
	m.saved = true
	m.log.WithFields(logrus.Fields{
		"attempt":   id,
		"completed": a.Completed,
	}).Info("attempt saved")
}

func (m *drillModel) setStatus(s string) {
	m.status = s
	m.isError = false
}

func (m *drillModel) setError(s string) {
	m.status = s
	m.isError = true
}

func (m *drillModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	alg := m.session.Algorithm()
	scores := m.session.Scores()

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  (%s)", alg.Name, alg.Category)))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(string(m.session.Mode())))
	b.WriteString("\n")
	if m.deviceName != "" {
		status := fmt.Sprintf("Connected: %s", m.deviceName)
		if battery := m.client.Battery(); battery >= 0 {
			status += fmt.Sprintf(" (Battery: %d%%)", battery)
		}
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderNet(m.session.State(), m.color))
	b.WriteString("\n")

	reveal := m.session.Mode() == trainer.ModeTraining || m.session.Demoing()
	b.WriteString(fmt.Sprintf("Step %d/%d  ", m.session.Step(), len(alg.Moves)))
	b.WriteString(renderProgress(alg.Moves, m.session.Step(), reveal))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Time: %s", formatDuration(m.session.Elapsed())))
	b.WriteString(fmt.Sprintf("   Streak: %d (best %d)", scores.Streak, scores.BestStreak))
	if scores.Stars > 0 {
		b.WriteString("   Best: ")
		b.WriteString(starStyle.Render(formatStars(scores.Stars)))
	}
	b.WriteString("\n\n")

	if m.typing {
		b.WriteString(fmt.Sprintf("Moves: %s_\n", m.input))
	} else if m.status != "" {
		if m.isError {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(moveStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "u d l r f b = turn  U D L R F B = prime  : = type  ? = hint  p = demo  n = new  q = quit"
	if m.typing {
		help = "Enter = play  Esc = cancel"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func runDrill(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	lib, err := loadLibrary(db)
	if err != nil {
		return err
	}
	alg, err := lib.Get(args[0])
	if err != nil {
		return err
	}

	mode := cfg.TrainerMode()
	if drillMode != "" {
		if mode, err = trainer.ParseMode(drillMode); err != nil {
			return err
		}
	}
	delay := cfg.AnimDelay
	if drillDelay >= 0 {
		delay = drillDelay
	}

	log := logger.WithField("component", "drill")
	session, err := trainer.New(alg,
		trainer.WithMode(mode),
		trainer.WithLogger(log),
	)
	if err != nil {
		return err
	}

	model := newDrillModel(session, storage.NewAttemptRepository(db), log.WithField("algorithm", alg.ID), delay)
	model.policy = cfg.ParsePolicy()

	if drillDevice {
		client, err := connectDevice(cmd.Context())
		if err != nil {
			return err
		}
		if client == nil {
			return nil
		}
		model.client = client
		model.deviceName = client.DeviceName()
	}

	restore, err := redirectLog()
	if err != nil {
		return err
	}
	defer restore()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if model.client != nil {
		model.client.OnMoves(func(moves []cubetrainer.Move) {
			p.Send(deviceMovesMsg{moves: moves})
		})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// connectDevice scans for and connects to the first GoCube before the TUI
// starts. It returns nil without error when none is found.
func connectDevice(ctx context.Context) (*smartcube.Client, error) {
	fmt.Println("Scanning for GoCube devices...")

	client, err := smartcube.NewClient(logger.WithField("command", "drill"))
	if err != nil {
		return nil, fmt.Errorf("BLE not available: %w", err)
	}

	target, err := client.ConnectFirst(ctx, cfg.ScanTimeout)
	if errors.Is(err, smartcube.ErrDeviceNotFound) {
		fmt.Println("No GoCube devices found. Rotate your cube to wake it up and try again.")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	fmt.Printf("Connected: %s\n", target.Name)
	if err := client.FlashBacklight(); err != nil {
		logger.WithError(err).Debug("failed to flash backlight")
	}
	return client, nil
}
