package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/patternlab/adaptive-rules/go-executor/internal/logging"
	"github.com/patternlab/adaptive-rules/go-executor/internal/replay"
	"github.com/patternlab/adaptive-rules/go-executor/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to executor_rules.db")
	last := flag.Int("last", 0, "export only the N most recent calls (0 = all)")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --out path/to/fixture.json [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath string, last int, outPath string) error {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

	execs, err := logging.ListExecutions(st.DB(), last)
	if err != nil {
		return err
	}
	if len(execs) == 0 {
		return fmt.Errorf("exec_log is empty; nothing to export")
	}

	fixture := replay.Fixture{
		Description: fmt.Sprintf("exported from %s (%d calls)", dbPath, len(execs)),
	}
	for _, e := range execs {
		fixture.Calls = append(fixture.Calls, replay.FixtureCall{
			TurnID:    e.TurnID,
			Session:   e.SessionID,
			Code:      e.Code,
			Input:     e.Input,
			Dimension: e.Dimension,
		})
		fixture.ExpectedOutputs = append(fixture.ExpectedOutputs, replay.FixtureExpectedOutput{
			TurnID: e.TurnID,
			Output: e.Output,
		})
	}

	// A full export carries the logged decisions as the complete
	// expected sequence; a partial one leaves them unchecked (nil)
	// because synthesis depends on calls outside the window.
	if last <= 0 {
		logged, err := logging.ListSyntheses(st.DB(), 10000)
		if err != nil {
			return err
		}
		fixture.ExpectedDecisions = make([]replay.FixtureExpectedDecision, 0, len(logged))
		for i := len(logged) - 1; i >= 0; i-- {
			fixture.ExpectedDecisions = append(fixture.ExpectedDecisions, replay.FixtureExpectedDecision{
				Decision:  logged[i].Decision,
				Canonical: logged[i].Canonical,
			})
		}
	}

	if err := replay.WriteFixture(outPath, fixture); err != nil {
		return err
	}

	fmt.Printf("wrote %s: %d calls, %d expected decisions\n",
		outPath, len(fixture.Calls), len(fixture.ExpectedDecisions))
	return nil
}

// #endregion export
