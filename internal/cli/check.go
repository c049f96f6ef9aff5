package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/spanwatch/spanwatch/internal/classify"
	"github.com/spanwatch/spanwatch/internal/denylist"
)

var (
	checkMethod   string
	checkDenylist string
)

var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Show how the classifier would treat a destination URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkMethod, "method", "X", "GET", "request method")
	checkCmd.Flags().StringVar(&checkDenylist, "denylist", "", "path to a deny-list YAML file")
	rootCmd.AddCommand(checkCmd)
}

// probeRequest is a minimal Request built from a bare URL.
type probeRequest struct {
	method string
	rawURL string
	path   string
}

func (p *probeRequest) Method() string { return p.method }
func (p *probeRequest) URL() string    { return p.rawURL }
func (p *probeRequest) Path() string   { return p.path }
func (p *probeRequest) Body() string   { return "" }

func runCheck(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}

	deny, err := denylist.Load(checkDenylist)
	if err != nil {
		return fmt.Errorf("load denylist: %w", err)
	}

	req := &probeRequest{method: checkMethod, rawURL: rawURL, path: u.Path}
	registry := classify.DefaultRegistry()
	st := registry.Resolve(u.Host)

	resourceType := st.Type
	if st.Retype != nil {
		if t := st.Retype(req); t != "" {
			resourceType = t
		}
	}
	operation := ""
	if st.Operation != nil {
		operation = st.Operation(req)
	}

	fmt.Printf("host:       %s\n", u.Host)
	if st.Tag != "" {
		fmt.Printf("matched:    %s\n", st.Tag)
	} else {
		fmt.Printf("matched:    (generic)\n")
	}
	fmt.Printf("type:       %s\n", resourceType)
	fmt.Printf("operation:  %s\n", operation)
	if st.Tag == "" && deny.Suppressed(rawURL) {
		fmt.Printf("emission:   suppressed by deny-list\n")
	} else {
		fmt.Printf("emission:   emitted\n")
	}
	return nil
}
