package args

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/regenrek/debugkit/internal/argv"
	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/root"
)

const maxLineBytes = 1 << 20

// Register registers the tokenizer handler.
func Register(reg *root.Registry) {
	reg.Register("args", runArgs)
}

func runArgs(ctx root.CommandContext) error {
	lines := append([]string{}, ctx.Args...)
	if ctx.Cmd != nil && ctx.Cmd.Bool("stdin") {
		read, err := readLines(ctx.Stdin)
		if err != nil {
			return err
		}
		lines = append(lines, read...)
	}
	join := ctx.Cmd != nil && ctx.Cmd.Bool("join")
	result := tokenize(lines, join)
	if ctx.JSON {
		return ctx.WriteJSON("args", result)
	}
	return writeText(ctx.Out, result)
}

func tokenize(lines []string, join bool) output.TokenizeResult {
	result := output.TokenizeResult{Lines: make([]output.TokenizedLine, 0, len(lines))}
	for _, line := range lines {
		item := output.TokenizedLine{Line: line, Tokens: argv.Parse(line)}
		if join {
			item.Joined = argv.Join(item.Tokens)
		}
		result.Lines = append(result.Lines, item)
	}
	return result
}

func readLines(in io.Reader) ([]string, error) {
	if in == nil {
		return nil, nil
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}

// writeText prints one quoted token per row so empty and blank tokens stay
// visible. Several lines are separated by a header.
func writeText(w io.Writer, result output.TokenizeResult) error {
	multi := len(result.Lines) > 1
	for i, line := range result.Lines {
		if multi {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "# %s\n", line.Line); err != nil {
				return err
			}
		}
		for idx, token := range line.Tokens {
			if _, err := fmt.Fprintf(w, "%d\t%s\n", idx, strconv.Quote(token)); err != nil {
				return err
			}
		}
		if line.Joined != "" {
			if _, err := fmt.Fprintf(w, "joined\t%s\n", line.Joined); err != nil {
				return err
			}
		}
	}
	return nil
}
