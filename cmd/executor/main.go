package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/patternlab/adaptive-rules/go-executor/internal/executor"
	"github.com/patternlab/adaptive-rules/go-executor/internal/gate"
	"github.com/patternlab/adaptive-rules/go-executor/internal/history"
	"github.com/patternlab/adaptive-rules/go-executor/internal/logging"
	"github.com/patternlab/adaptive-rules/go-executor/internal/pattern"
	"github.com/patternlab/adaptive-rules/go-executor/internal/store"
)

// #region main
func main() {
	dbPath := envOr("EXECUTOR_DB", "executor_rules.db")

	st, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	table := pattern.DefaultTable()
	loaded, err := st.LoadTable(table)
	if err != nil {
		log.Fatalf("failed to load rules: %v", err)
	}

	exec := executor.New(table, executor.DefaultConfig(), logging.NewRecorder(st))

	// Resume the trust level from the previous session, if any.
	sess, err := st.LatestSession()
	if err != nil {
		log.Fatalf("failed to load session: %v", err)
	}
	if sess != nil {
		exec.SetTrust(gate.ParseTrustLevel(sess.TrustLevel))
	}
	savedTrust := exec.Trust()

	// One session per process: DB-mode replay resets its buffer at
	// session boundaries, matching the in-memory history dying here.
	sessionID := uuid.New().String()

	fmt.Println("Adaptive Rule Executor ready.")
	fmt.Printf("  DB: %s | %d seeded + %d persisted rules | trust=%s\n",
		dbPath, table.Len()-loaded, loaded, exec.Trust())
	fmt.Println("Type '<code|name> <number>' to execute, or 'rules', 'state', 'trust <level>', 'quit':")

	scanner := bufio.NewScanner(os.Stdin)
	turnNum := 0
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		switch {
		case line == "rules":
			printRules(exec)
		case line == "state":
			printState(exec)
		case strings.HasPrefix(line, "trust "):
			level := gate.ParseTrustLevel(strings.TrimSpace(strings.TrimPrefix(line, "trust ")))
			exec.SetTrust(level)
			fmt.Printf("trust set to %s\n", level)
		default:
			turnNum++
			runLine(exec, st, sessionID, fmt.Sprintf("turn-%d", turnNum), line)
		}

		// Persist trust transitions so the next session resumes them.
		if exec.Trust() != savedTrust {
			if err := st.SaveSession(exec.Trust().String(), exec.State().RuleCount); err != nil {
				log.Printf("save session: %v", err)
			} else {
				savedTrust = exec.Trust()
			}
		}
	}
}

// #endregion main

// #region execute-line
func runLine(exec *executor.Executor, st *store.Store, sessionID, turnID, line string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		fmt.Println("usage: <code|name> <number>")
		return
	}

	input, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		fmt.Printf("not a number: %s\n", fields[1])
		return
	}

	code, _ := exec.Table().Resolve(fields[0])
	output := exec.Execute(fields[0], input)

	if err := logging.LogExecution(st.DB(), logging.ExecRow{
		SessionID: sessionID,
		TurnID:    turnID,
		Code:      code,
		Dimension: history.DefaultDimension,
		Input:     input,
		Output:    output,
	}); err != nil {
		log.Printf("log execution: %v", err)
	}

	snap := exec.State()
	fmt.Printf("%g → %g   [rules=%d history=%d trust=%s]\n",
		input, output, snap.RuleCount, snap.HistorySize, snap.TrustLevel)
}

// #endregion execute-line

// #region print-helpers
func printRules(exec *executor.Executor) {
	table := exec.Table()
	byCode := make(map[string]string)
	for name, code := range table.Aliases() {
		byCode[code] = name
	}
	for _, code := range table.Codes() {
		r, _ := table.Get(code)
		if name, ok := byCode[code]; ok {
			fmt.Printf("  %s (%s): %s\n", code, name, r.String())
		} else {
			fmt.Printf("  %s: %s\n", code, r.String())
		}
	}
}

func printState(exec *executor.Executor) {
	snap := exec.State()
	fmt.Printf("trust=%s rules=%d history=%d\n", snap.TrustLevel, snap.RuleCount, snap.HistorySize)
}

// #endregion print-helpers

// #region env
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion env
