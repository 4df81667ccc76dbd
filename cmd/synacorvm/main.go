package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"synacorvm/meta"
	"synacorvm/snapshot"
	"synacorvm/solve"
	"synacorvm/trace"
	"synacorvm/vm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "synacorvm",
		Short: "Run, debug, and solve puzzles for a Synacor-style 16-bit VM image",
	}

	var runImage, runSnapshot, runTrace string
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Load a binary image and run it to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, toggles := newInteractiveMachine(runSnapshot, runImage)
			// Resume from the snapshot when one can be restored; a missing
			// or corrupt snapshot falls back to a fresh load of the image.
			if err := snapshot.Restore(runSnapshot, m); err != nil {
				if err := m.LoadFile(runImage); err != nil {
					return err
				}
			}

			var rec *trace.Recorder
			if runTrace != "" {
				var err error
				rec, err = trace.NewFileRecorder(runTrace)
				if err != nil {
					return err
				}
				defer rec.Close()
			} else {
				rec = trace.NewRecorder(os.Stdout)
			}
			// A "*clear-trace" line truncates whichever sink rec was built
			// with; for the stdout fallback this is a no-op (see
			// trace.Recorder.Clear).
			toggles.Clear = rec.Clear

			return m.RunTraced(func(r vm.TraceRecord) {
				if toggles.Enabled && toggles.Print {
					rec.Observe(r)
				}
			})
		},
	}
	runCmd.Flags().StringVar(&runImage, "image", "", "path to the binary program image (required)")
	runCmd.Flags().StringVar(&runSnapshot, "snapshot", "snapshot.yaml", "path to save/restore snapshot file")
	runCmd.Flags().StringVar(&runTrace, "trace", "", "path to append trace output to (defaults to stdout)")
	runCmd.MarkFlagRequired("image")

	var debugImage, debugSnapshot string
	debugCmd := &cobra.Command{
		Use:   "debug",
		Short: "Load a binary image and step through it in an interactive viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _ := newInteractiveMachine(debugSnapshot, debugImage)
			if err := m.LoadFile(debugImage); err != nil {
				return err
			}
			return trace.Replay(m)
		},
	}
	debugCmd.Flags().StringVar(&debugImage, "image", "", "path to the binary program image (required)")
	debugCmd.Flags().StringVar(&debugSnapshot, "snapshot", "snapshot.yaml", "path to save/restore snapshot file")
	debugCmd.MarkFlagRequired("image")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Run an auxiliary puzzle solver against a fresh machine and print the input lines it would feed",
	}

	solveCoinsCmd := &cobra.Command{
		Use:   "coins",
		Short: "Print every permutation of coin use/take lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := vm.NewMachine(func() (string, error) { return "", nil }, nil)
			solve.Coins(m)
			return printPending(m)
		},
	}

	solvePathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the shortest vault-room path as a sequence of room moves",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := vm.NewMachine(func() (string, error) { return "", nil }, nil)
			solve.Path(m)
			return printPending(m)
		},
	}

	solveTeleportCmd := &cobra.Command{
		Use:   "teleport",
		Short: "Brute-force the register-7 calibration value",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := solve.TeleportRegister(solve.DefaultTarget)
			if !ok {
				return fmt.Errorf("no calibration value found for target %d", solve.DefaultTarget)
			}
			fmt.Println(v)
			return nil
		},
	}

	solveCmd.AddCommand(solveCoinsCmd, solvePathCmd, solveTeleportCmd)
	rootCmd.AddCommand(runCmd, debugCmd, solveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newInteractiveMachine wires a Machine whose input comes line-by-line from
// stdin and whose sentinel lines are routed to meta.Dispatch. The returned
// TraceToggles is shared with the meta dispatcher, so a running program's
// own "*toggle-trace" line takes effect on the very next instruction.
func newInteractiveMachine(snapshotPath, imagePath string) (*vm.Machine, *meta.TraceToggles) {
	var m *vm.Machine
	toggles := &meta.TraceToggles{}

	stdin := bufio.NewReader(os.Stdin)
	readLine := func() (string, error) {
		line, err := stdin.ReadString('\n')
		return strings.TrimRight(line, "\r\n"), err
	}

	opts := meta.Options{
		SnapshotPath: snapshotPath,
		ImagePath:    imagePath,
		Trace:        toggles,
	}
	onMeta := func(line string) {
		if err := meta.Dispatch(m, opts, line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	m = vm.NewMachine(readLine, onMeta)
	return m, toggles
}

func printPending(m *vm.Machine) error {
	s := m.State()
	fmt.Print(string(s.Inputs))
	return nil
}
