package reconciliation

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const reportFileName = "reconciliation_report.json"

var ErrNoReport = errors.New("reconciliation: no report available")

// Rollup sums donation amounts per designation. Amounts are carried as
// formatted strings so cents survive JSON round-trips exactly.
type Rollup struct {
	Total         string            `json:"total"`
	ByDesignation map[string]string `json:"by_designation"`
}

// Report compares the payment processor's export against the internal books.
type Report struct {
	ReportID      string `json:"report_id"`
	GeneratedAt   string `json:"generated_at"`
	Square        Rollup `json:"square"`
	Internal      Rollup `json:"internal"`
	VarianceTotal string `json:"variance_total"`
}

// Run recomputes the reconciliation report from donations.csv (processor
// export) and internal_donations.csv, and persists it for Latest. A missing
// input file contributes an empty rollup rather than failing the run.
func Run(dataDir string) (*Report, error) {
	square, err := loadAmounts(filepath.Join(dataDir, "donations.csv"))
	if err != nil {
		return nil, err
	}
	internal, err := loadAmounts(filepath.Join(dataDir, "internal_donations.csv"))
	if err != nil {
		return nil, err
	}

	squareRollup, squareTotal := rollup(square)
	internalRollup, internalTotal := rollup(internal)

	report := &Report{
		ReportID:      uuid.NewString(),
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Square:        squareRollup,
		Internal:      internalRollup,
		VarianceTotal: formatCents(squareTotal - internalTotal),
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dataDir, reportFileName), payload, 0o644); err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}
	return report, nil
}

// Latest returns the most recently persisted report.
func Latest(dataDir string) (*Report, error) {
	payload, err := os.ReadFile(filepath.Join(dataDir, reportFileName))
	if err != nil {
		return nil, ErrNoReport
	}
	var report Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, ErrNoReport
	}
	return &report, nil
}

type entry struct {
	designation string
	cents       int64
}

func loadAmounts(path string) ([]entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	amountIdx, designationIdx := -1, -1
	for i, col := range records[0] {
		switch col {
		case "amount":
			amountIdx = i
		case "designation":
			designationIdx = i
		}
	}

	var entries []entry
	for _, record := range records[1:] {
		e := entry{designation: "General Fund"}
		if designationIdx >= 0 && designationIdx < len(record) && record[designationIdx] != "" {
			e.designation = record[designationIdx]
		}
		if amountIdx >= 0 && amountIdx < len(record) {
			e.cents = parseCents(record[amountIdx])
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func rollup(entries []entry) (Rollup, int64) {
	byDesignation := map[string]int64{}
	var total int64
	for _, e := range entries {
		byDesignation[e.designation] += e.cents
		total += e.cents
	}

	formatted := make(map[string]string, len(byDesignation))
	names := make([]string, 0, len(byDesignation))
	for name := range byDesignation {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		formatted[name] = formatCents(byDesignation[name])
	}
	return Rollup{Total: formatCents(total), ByDesignation: formatted}, total
}

// parseCents converts a decimal amount string into integer cents, rounding
// half away from zero. Blank or malformed values count as zero.
func parseCents(raw string) int64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(v * 100))
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
