// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// AutoConfirm always proceeds. Used in automatic mode.
type AutoConfirm struct{}

// Confirm reports true without consulting anyone.
func (AutoConfirm) Confirm(string) (bool, error) { return true, nil }

// PromptConfirm shows the generated post and reads a one-line yes/no
// answer. Anything other than an affirmative declines.
type PromptConfirm struct {
	In  io.Reader
	Out io.Writer
}

// Confirm prints the preview and reads the decision. An EOF on input
// counts as a decline, not an error.
func (p PromptConfirm) Confirm(preview string) (bool, error) {
	divider := strings.Repeat("=", 50)
	fmt.Fprintf(p.Out, "%s\nPOST PREVIEW\n%s\n%s\n%s\n", divider, divider, preview, divider)
	fmt.Fprintf(p.Out, "length: %d characters\n", len([]rune(preview)))
	fmt.Fprint(p.Out, "Publish this post? (y/n): ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
