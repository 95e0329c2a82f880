// Package loc counts source lines and derives organic COCOMO estimates.
package loc

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Counts accumulates line classifications across files.
type Counts struct {
	Files    int
	Total    int
	Code     int
	Comments int
	Blank    int
}

// Add merges o into c.
func (c *Counts) Add(o Counts) {
	c.Files += o.Files
	c.Total += o.Total
	c.Code += o.Code
	c.Comments += o.Comments
	c.Blank += o.Blank
}

// CodePercent is the share of code lines, 0 when there are no lines.
func (c Counts) CodePercent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Code) * 100 / float64(c.Total)
}

// CommentPercent is the share of comment lines, 0 when there are no lines.
func (c Counts) CommentPercent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Comments) * 100 / float64(c.Total)
}

// CountReader classifies every line of r. A line is blank, a comment (a //
// line, or any line of a block that starts with /*), or code.
func CountReader(r io.Reader) (Counts, error) {
	var c Counts
	inBlock := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		c.Total++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			c.Blank++
		case inBlock:
			c.Comments++
			if strings.Contains(line, "*/") {
				inBlock = false
			}
		case strings.HasPrefix(line, "/*"):
			c.Comments++
			inBlock = !strings.Contains(line[2:], "*/")
		case strings.HasPrefix(line, "//"):
			c.Comments++
		default:
			c.Code++
		}
	}
	return c, scanner.Err()
}

// CountFile classifies the lines of a single file.
func CountFile(path string) (Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return Counts{}, err
	}
	defer f.Close()

	c, err := CountReader(f)
	if err != nil {
		return c, fmt.Errorf("failed to read %s: %w", path, err)
	}
	c.Files = 1
	return c, nil
}

// CountDir walks root and counts every file whose name ends with ext.
// Unreadable files are reported through onError and skipped.
func CountDir(root, ext string, onError func(path string, err error)) (Counts, error) {
	var total Counts
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ext) {
			return nil
		}

		c, err := CountFile(path)
		if err != nil {
			if onError != nil {
				onError(path, err)
			}
			return nil
		}
		total.Add(c)
		return nil
	})
	return total, err
}
