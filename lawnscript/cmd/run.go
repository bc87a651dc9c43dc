package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lawnlab/lawnscript/board"
	"github.com/lawnlab/lawnscript/clock"
	"github.com/lawnlab/lawnscript/journal"
	"github.com/lawnlab/lawnscript/mem"
	"github.com/lawnlab/lawnscript/monitor"
	"github.com/lawnlab/lawnscript/proc"
	"github.com/lawnlab/lawnscript/script"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Attach to the game and run the scheduler loop.",
	Long: `run attaches to the game process, starts the scheduler loop, ` +
		`and keeps it polling until the game exits or the monitor's stop ` +
		`endpoint is hit. Actions are logged rather than executed; real ` +
		`scripts embed the packages directly and register their own ` +
		`dispatcher.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runScript(cmd)
	},
}

func init() {
	runCmd.Flags().String("process", "",
		"process name to attach to (default: known game executables)")
	runCmd.Flags().Int("poll-ms", 10, "main loop polling interval, ms")
	runCmd.Flags().Int("monitor-port", 0,
		"start the web monitor on this port (0 disables)")
	runCmd.Flags().Bool("browser", false, "open the monitor in a browser")
	runCmd.Flags().String("journal", "",
		"record dispatched actions into this SQLite database")

	rootCmd.AddCommand(runCmd)
}

// loadEnv pulls defaults from .env without overriding explicit flags.
func loadEnv(cmd *cobra.Command) {
	_ = godotenv.Load()

	if v := os.Getenv("LAWNSCRIPT_PROCESS"); v != "" &&
		!cmd.Flags().Changed("process") {
		_ = cmd.Flags().Set("process", v)
	}

	if v := os.Getenv("LAWNSCRIPT_MONITOR_PORT"); v != "" &&
		!cmd.Flags().Changed("monitor-port") {
		if _, err := strconv.Atoi(v); err == nil {
			_ = cmd.Flags().Set("monitor-port", v)
		}
	}
}

func runScript(cmd *cobra.Command) {
	loadEnv(cmd)

	target := proc.DefaultTarget
	if name, _ := cmd.Flags().GetString("process"); name != "" {
		target.ProcessNames = []string{name}
	}

	sess, err := proc.AttachTo(target)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer sess.Detach()

	fmt.Fprintf(os.Stderr, "Attached to pid %d, module base %#x\n",
		sess.Pid(), sess.Base())

	acc := mem.NewAccessor(sess)
	boardReader := board.NewReader(acc, board.Default)
	clockReader := clock.NewReader(acc, board.Default.ClockLayout())

	pollMs, _ := cmd.Flags().GetInt("poll-ms")

	sched := script.MakeBuilder().
		WithName("lawnscript run").
		WithClock(clockReader).
		WithTarget(sess).
		WithDispatcher(script.DispatchFunc(func(act script.Action) error {
			log.Printf("due action: %s", act)
			return nil
		})).
		WithPollInterval(time.Duration(pollMs) * time.Millisecond).
		Build()

	sched.AcceptHook(script.NewDispatchLogger(
		log.New(os.Stderr, "dispatch ", log.LstdFlags)))

	if path, _ := cmd.Flags().GetString("journal"); path != "" {
		recorder := journal.New(path)
		sched.AcceptHook(journal.NewDispatchLog(recorder))
	}

	if port, _ := cmd.Flags().GetInt("monitor-port"); port != 0 {
		m := monitor.NewMonitor().WithPortNumber(port)

		if open, _ := cmd.Flags().GetBool("browser"); open {
			m = m.WithBrowser()
		}

		m.RegisterSession(sess)
		m.RegisterScheduler(sched)
		m.RegisterClock(clockReader)
		m.RegisterBoard(boardReader)
		m.StartServer()
	}

	if err := sched.Run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
