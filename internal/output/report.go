package output

import (
	"fmt"
	"strings"

	"github.com/immocalc/realty-calculator/internal/domain"
)

// GenerateReport writes the report in the requested format into dir and returns the written files.
// "all" writes the verbose text, detailed CSV, JSON and HTML renditions.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to write")
	}
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range []string{"console", "detailed-csv", "json", "html"} {
			f := GetFormatterByName(name)
			file, err := WriteFormatted(f, report, dir, extensionFor(name))
			if err != nil {
				return files, fmt.Errorf("failed to write %s report: %w", name, err)
			}
			files = append(files, file)
		}
		return files, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupportedFormatError(format)
	}
	file, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}

// Render formats the report in memory, used for printing to stdout.
func Render(report *domain.Report, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupportedFormatError(format)
	}
	return f.Format(report)
}

func unsupportedFormatError(format string) error {
	// enrich error with available formatters and aliases
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
