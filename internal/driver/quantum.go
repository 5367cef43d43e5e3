package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

var ErrQuantumRequired = errors.New("a quantum is required for this process set")

// QuantumSource supplies the time quantum for quantum-based policies.
type QuantumSource func(ctx context.Context) (int64, error)

// Fixed always returns q.
func Fixed(q int64) QuantumSource {
	return func(context.Context) (int64, error) {
		return q, nil
	}
}

// Prompt asks for the quantum on w and reads a single line from r. The answer
// is remembered, so the question is asked at most once.
func Prompt(r io.Reader, w io.Writer) QuantumSource {
	var (
		once    sync.Once
		quantum int64
		err     error
	)
	reader := bufio.NewReader(r)
	return func(context.Context) (int64, error) {
		once.Do(func() {
			_, _ = fmt.Fprint(w, "Enter the quantum for the algorithms that need one: ")
			line, readErr := reader.ReadString('\n')
			if readErr != nil && (readErr != io.EOF || line == "") {
				err = fmt.Errorf("%w: reading quantum", readErr)
				return
			}
			quantum, err = strconv.ParseInt(strings.TrimSpace(line), 10, 64)
			if err != nil {
				err = fmt.Errorf("%w: invalid quantum %q", err, strings.TrimSpace(line))
			}
		})
		return quantum, err
	}
}

// FirstOf returns the first source yielding a positive quantum, skipping nil
// sources and ones that return zero.
func FirstOf(sources ...QuantumSource) QuantumSource {
	return func(ctx context.Context) (int64, error) {
		for _, source := range sources {
			if source == nil {
				continue
			}
			q, err := source(ctx)
			if err != nil {
				return 0, err
			}
			if q != 0 {
				return q, nil
			}
		}
		return 0, ErrQuantumRequired
	}
}
