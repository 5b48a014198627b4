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
	dbPath := flag.String("db", "", "path to executor_rules.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/executor_rules.db")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	fixture, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	results, summary, err := replay.Replay(fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	printSummary(summary)

	mismatches := replay.Verify(fixture, results)
	if len(mismatches) > 0 {
		fmt.Println("\nMISMATCHES:")
		for _, m := range mismatches {
			fmt.Printf("  %s\n", m)
		}
		return 1
	}
	fmt.Println("\nAll expectations matched.")
	return 0
}

// #endregion fixture-mode

// #region db-mode

// runDBMode rebuilds the recorded call sequence from exec_log, replays
// it in memory, and compares synthesis decisions against synth_log.
func runDBMode(dbPath string) int {
	st, err := store.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 1
	}
	defer st.Close()

	execs, err := logging.ListExecutions(st.DB(), 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if len(execs) == 0 {
		fmt.Fprintln(os.Stderr, "exec_log is empty; nothing to replay")
		return 1
	}

	fixture := replay.Fixture{
		Description: fmt.Sprintf("replayed from %s", dbPath),
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

	// Logged synthesis decisions are the expected ones, oldest first.
	// The list is authoritative: a non-nil (even empty) slice makes
	// Verify flag surplus synthesis as divergence.
	logged, err := logging.ListSyntheses(st.DB(), 10000)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fixture.ExpectedDecisions = make([]replay.FixtureExpectedDecision, 0, len(logged))
	for i := len(logged) - 1; i >= 0; i-- {
		fixture.ExpectedDecisions = append(fixture.ExpectedDecisions, replay.FixtureExpectedDecision{
			Decision:  logged[i].Decision,
			Canonical: logged[i].Canonical,
		})
	}

	results, summary, err := replay.Replay(fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	printSummary(summary)

	mismatches := replay.Verify(fixture, results)
	if len(mismatches) > 0 {
		fmt.Println("\nDIVERGENCES:")
		for _, m := range mismatches {
			fmt.Printf("  %s\n", m)
		}
		return 1
	}
	fmt.Println("\nReplay matches the recorded run.")
	return 0
}

// #endregion db-mode

// #region print

func printSummary(s replay.Summary) {
	fmt.Printf("calls=%d syntheses=%d (register=%d replace=%d log_only=%d reject=%d)\n",
		s.Calls, s.Syntheses, s.Registered, s.Replaced, s.LogOnly, s.Rejected)
	fmt.Printf("final: trust=%s rules=%d history=%d\n",
		s.Final.TrustLevel, s.Final.RuleCount, s.Final.HistorySize)
}

// #endregion print
