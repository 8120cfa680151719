// picompare compares a computed pi digit file against a reference file,
// reporting how many leading digits agree.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// extractDigits pulls just the decimal digits out of a formatted pi
// file, tolerating both the header+grouped-lines format this project
// writes and a bare "3.14159..." file.
func extractDigits(content string) string {
	lines := strings.Split(content, "\n")

	digitsStart := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "3." {
			if i+1 < len(lines) {
				digitsStart = i + 1
			}
			break
		}
	}

	if digitsStart >= 0 {
		var digits strings.Builder
		for _, line := range lines[digitsStart:] {
			for _, r := range line {
				if r >= '0' && r <= '9' {
					digits.WriteRune(r)
				}
			}
		}
		return digits.String()
	}

	var digits strings.Builder
	for _, r := range content {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	result := digits.String()
	if strings.HasPrefix(result, "3") {
		result = result[1:]
	}
	return result
}

func newRootCmd() *cobra.Command {
	var maxDigits int

	cmd := &cobra.Command{
		Use:   "picompare <calculated-file> <reference-file>",
		Short: "Compare a computed pi digit file against a reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(args[0], args[1], maxDigits)
		},
	}
	cmd.Flags().IntVar(&maxDigits, "digits", -1, "compare only the first N digits (default: all)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runCompare(calculatedFile, referenceFile string, maxDigits int) error {
	calculatedBytes, err := os.ReadFile(calculatedFile)
	if err != nil {
		return fmt.Errorf("reading calculated file: %w", err)
	}
	calculated := extractDigits(string(calculatedBytes))

	referenceBytes, err := os.ReadFile(referenceFile)
	if err != nil {
		return fmt.Errorf("reading reference file: %w", err)
	}
	reference := extractDigits(string(referenceBytes))

	if maxDigits > 0 {
		if len(calculated) > maxDigits {
			calculated = calculated[:maxDigits]
		}
		if len(reference) > maxDigits {
			reference = reference[:maxDigits]
		}
	}

	minLen := len(calculated)
	if len(reference) < minLen {
		minLen = len(reference)
	}

	// The last couple of digits can legitimately differ by rounding
	// propagation from truncation rather than rounding; exclude them
	// from the match tally.
	compareLen := minLen
	switch {
	case compareLen > 2:
		compareLen -= 2
	case compareLen > 1:
		compareLen--
	}

	matchCount := 0
	firstMismatch := -1
	for i := 0; i < compareLen; i++ {
		if calculated[i] == reference[i] {
			matchCount++
		} else if firstMismatch == -1 {
			firstMismatch = i
		}
	}

	fmt.Printf("Comparison Results:\n")
	fmt.Printf("  Calculated file: %s\n", calculatedFile)
	fmt.Printf("  Reference file:  %s\n", referenceFile)
	fmt.Printf("  Calculated length: %d digits\n", len(calculated))
	fmt.Printf("  Reference length:  %d digits\n", len(reference))
	fmt.Printf("  Compared:          %d digits (last 1-2 digits ignored)\n", compareLen)
	fmt.Printf("  Matches:           %d digits\n", matchCount)

	if compareLen > 0 {
		accuracy := float64(matchCount) / float64(compareLen) * 100.0
		fmt.Printf("  Accuracy:          %.2f%%\n", accuracy)
	}

	if firstMismatch >= 0 {
		fmt.Printf("\n  first mismatch at position %d (after decimal point):\n", firstMismatch+1)
		fmt.Printf("    calculated: %c\n", calculated[firstMismatch])
		fmt.Printf("    reference:  %c\n", reference[firstMismatch])
		return fmt.Errorf("digits diverge at position %d", firstMismatch+1)
	}

	if len(calculated) != len(reference) {
		return fmt.Errorf("length mismatch: calculated has %d digits, reference has %d digits", len(calculated), len(reference))
	}

	fmt.Printf("\n  all %d compared digits match\n", matchCount)
	return nil
}
