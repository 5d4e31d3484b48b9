package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/framelab/cadence/loop"
	"github.com/framelab/cadence/monitoring"
	"github.com/framelab/cadence/recording"
	"github.com/framelab/cadence/stats"
	"github.com/framelab/cadence/window/headless"
)

var benchCmd = &cobra.Command{
	Use: "bench",
	Short: "Run the pacing engine against a headless window and report " +
		"achieved rates.",
	Run: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().Uint64("ups", loop.DefaultUPS,
		"simulation updates per second")
	benchCmd.Flags().Uint64("max-fps", loop.DefaultMaxFPS,
		"maximum frames per second")
	benchCmd.Flags().Duration("duration", 5*time.Second,
		"how long to run the loop")
	benchCmd.Flags().Bool("monitor", false,
		"start the monitoring server")
	benchCmd.Flags().Int("monitor-port", 0,
		"port for the monitoring server, random if unset")
	benchCmd.Flags().Bool("open", false,
		"open the monitoring page in the default browser")
	benchCmd.Flags().String("record", "",
		"record an emission trace into this SQLite database")
}

func runBench(cmd *cobra.Command, _ []string) {
	loadEnvDefaults(cmd)

	ups, _ := cmd.Flags().GetUint64("ups")
	maxFPS, _ := cmd.Flags().GetUint64("max-fps")
	duration, _ := cmd.Flags().GetDuration("duration")
	monitorOn, _ := cmd.Flags().GetBool("monitor")
	monitorPort, _ := cmd.Flags().GetInt("monitor-port")
	openPage, _ := cmd.Flags().GetBool("open")
	recordPath, _ := cmd.Flags().GetString("record")

	window := headless.New[struct{}](1280, 720)
	sched := loop.New[struct{}, loop.Event[struct{}]](
		window, loop.TaggedFactory[struct{}]{}).
		UPS(ups).
		MaxFPS(maxFPS)

	collector := stats.NewCollector()
	sched.AcceptHook(collector)

	var recorder recording.DataRecorder
	if recordPath != "" {
		recorder = recording.New(recordPath)
		sched.AcceptHook(recording.NewTraceHook(recorder))
	}

	if monitorOn {
		monitor := monitoring.NewMonitor()
		if monitorPort > 0 {
			monitor.WithPortNumber(monitorPort)
		}
		monitor.RegisterLoop(sched)
		monitor.RegisterCollector(collector)
		monitor.StartServer()

		if openPage {
			monitor.OpenDashboard()
		}
	}

	time.AfterFunc(duration, window.Close)

	for range sched.Events() {
	}

	if recorder != nil {
		recorder.Flush()
	}

	report(collector.Snapshot(), window.Swaps())

	atexit.Exit(0)
}

func loadEnvDefaults(cmd *cobra.Command) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	setUint64FlagFromEnv(cmd, "ups", "CADENCE_UPS")
	setUint64FlagFromEnv(cmd, "max-fps", "CADENCE_MAX_FPS")
}

func setUint64FlagFromEnv(cmd *cobra.Command, flag, env string) {
	if cmd.Flags().Changed(flag) {
		return
	}

	value, ok := os.LookupEnv(env)
	if !ok {
		return
	}

	if _, err := strconv.ParseUint(value, 10, 64); err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q: %v\n", env, value, err)
		return
	}

	err := cmd.Flags().Set(flag, value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q: %v\n", env, value, err)
	}
}

func report(s stats.Snapshot, swaps uint64) {
	fmt.Printf("frames:    %d\n", s.Frames)
	fmt.Printf("presented: %d\n", swaps)
	fmt.Printf("updates:   %d\n", s.Updates)
	fmt.Printf("sim time:  %.3f s\n", s.SimTimeSec)
	fmt.Printf("idle time: %.3f s\n", s.IdleTimeSec)
	fmt.Printf("avg fps:   %.2f\n", s.AvgFPS)
	fmt.Printf("avg ups:   %.2f\n", s.AvgUPS)
}
