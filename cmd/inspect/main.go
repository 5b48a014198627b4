package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/patternlab/adaptive-rules/go-executor/internal/logging"
	"github.com/patternlab/adaptive-rules/go-executor/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to executor_rules.db")
	last := flag.Int("last", 20, "show N most recent synthesis decisions")
	code := flag.String("code", "", "show single rule detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of text")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/executor_rules.db [--last N] [--code c] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *code != "" {
		err = runDetailMode(st, *code, *jsonOut)
	} else {
		err = runListMode(st, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region detail-mode

func runDetailMode(st *store.Store, code string, jsonOut bool) error {
	rec, r, err := st.GetRule(code)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"code":      rec.Code,
			"rule_id":   rec.RuleID,
			"kind":      rec.Kind,
			"canonical": rec.Canonical,
			"origin":    rec.Origin,
			"created":   rec.CreatedAt,
			"rule":      r,
		})
	}

	fmt.Printf("code:      %s\n", rec.Code)
	fmt.Printf("rule_id:   %s\n", rec.RuleID)
	fmt.Printf("kind:      %s\n", rec.Kind)
	fmt.Printf("canonical: %s\n", rec.Canonical)
	fmt.Printf("origin:    %s\n", rec.Origin)
	fmt.Printf("created:   %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// #endregion detail-mode

// #region list-mode

func runListMode(st *store.Store, last int, jsonOut bool) error {
	rules, err := st.ListRules()
	if err != nil {
		return err
	}
	syntheses, err := logging.ListSyntheses(st.DB(), last)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"rules":     rules,
			"syntheses": syntheses,
		})
	}

	fmt.Printf("%d persisted rules:\n", len(rules))
	for _, rec := range rules {
		fmt.Printf("  %s  %-12s %s\n", rec.Code, rec.Origin, rec.Canonical)
	}

	fmt.Printf("\n%d most recent synthesis decisions:\n", len(syntheses))
	for _, row := range syntheses {
		code := row.Code
		if code == "" {
			code = "-"
		}
		fmt.Printf("  %-9s %s  %s  r²=%.4f n=%d trust=%s dim=%s/%d\n",
			row.Decision, code, row.Canonical, row.RSquared, row.SampleCount,
			row.TrustLevel, row.Dimension, row.Bucket)
	}
	return nil
}

// #endregion list-mode

// #region json

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion json
