// Package flagx lets several components parse their own subset of the
// command line without tripping over each other's flags.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps only the allowed flags (and their values) from args.
//
// Accepted forms are "-f value", "-f=value" and "--f=value". A value is
// taken from the following argument only when it does not start with '-'.
func FilterArgs(args []string, allowed []string) []string {
	return Filter(args, allowed, nil)
}

// Filter is FilterArgs with support for boolean switches: a switch never
// consumes the following argument, so "-v positional" keeps only "-v".
func Filter(args []string, valued []string, switches []string) []string {
	takesValue := make(map[string]bool, len(valued)+len(switches))
	for _, f := range valued {
		takesValue[f] = true
	}
	for _, f := range switches {
		takesValue[f] = false
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, known := takesValue[name]; known {
				filtered = append(filtered, arg)
			}
			continue
		}

		needsValue, known := takesValue[arg]
		if !known {
			continue
		}
		filtered = append(filtered, arg)

		if needsValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath extracts the JSON config path given via -c or -config.
// The last occurrence wins; an empty string means no file was requested.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
