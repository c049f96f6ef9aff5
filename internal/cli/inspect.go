package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spanwatch/spanwatch/internal/event"
	"github.com/spanwatch/spanwatch/internal/model"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:          "inspect <trace-file>",
	Short:        "Validate and summarize a JSON-lines dump of event records",
	Args:         cobra.ExactArgs(1),
	RunE:         runInspect,
	SilenceUsage: true,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print each valid record as canonical JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open trace file: %w", err)
	}
	defer f.Close()

	var total, errored, excepted, malformed int

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rep map[string]any
		if err := json.Unmarshal(line, &rep); err != nil {
			malformed++
			fmt.Fprintf(os.Stderr, "line %d: not JSON: %v\n", lineNo, err)
			continue
		}
		ev, err := event.FromRepresentation(rep)
		if err != nil {
			malformed++
			fmt.Fprintf(os.Stderr, "line %d: %v\n", lineNo, err)
			continue
		}

		total++
		switch ev.ErrorCode {
		case model.CodeError:
			errored++
		case model.CodeException:
			excepted++
		}

		if inspectJSON {
			out, _ := json.Marshal(ev.ToRepresentation())
			fmt.Println(string(out))
		} else {
			fmt.Printf("%-40s  %-16s  %-24s  code=%d  %.3fs\n",
				ev.ID, ev.Resource.Type, ev.Resource.Operation, ev.ErrorCode, ev.Duration)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read trace file: %w", err)
	}

	fmt.Printf("\n%d records (%d error, %d exception), %d malformed lines\n",
		total, errored, excepted, malformed)
	if malformed > 0 {
		return fmt.Errorf("%d malformed lines in %s", malformed, args[0])
	}
	return nil
}
