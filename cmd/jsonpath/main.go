// Command jsonpath evaluates a JSONPath expression against one or more
// JSON documents and prints each match. See spec.md §6 for the
// invocation contract this rebuilds (the CLI is an external
// collaborator to the query engine in jsonpath/).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/go-jsonpath-rw/jsonpath"
)

func main() {
	klog.InitFlags(nil)

	var (
		autoID  = pflag.String("auto-id", "", "field name to synthesize as full_path when absent")
		update  = pflag.String("update", "", "replace every match with this JSON-encoded value")
		include = pflag.Bool("include", false, "restrict each document to the matched locations")
		exclude = pflag.Bool("exclude", false, "remove the matched locations from each document")
		debug   = pflag.Bool("debug", false, "enable verbose evaluation tracing")
	)
	pflag.Parse()
	defer klog.Flush()

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: jsonpath EXPR [FILE...]")
		os.Exit(2)
	}
	expr := args[0]
	files := args[1:]

	jp := jsonpath.New("cli")
	if *debug {
		// The trace is logged at klog.V(4); klog's own flags are not
		// parsed by pflag, so raise its verbosity here.
		_ = flag.Set("v", "4")
		jp.EnableDebugMsgs()
	}
	if *autoID != "" {
		jp.SetAutoIDField(*autoID)
	}
	if err := jp.Parse(expr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var updateValue any
	hasUpdate := *update != ""
	if hasUpdate {
		if err := json.Unmarshal([]byte(*update), &updateValue); err != nil {
			fmt.Fprintf(os.Stderr, "invalid --update value: %v\n", err)
			os.Exit(2)
		}
	}

	docs, err := readDocuments(files)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, doc := range docs {
		if err := run(jp, doc, hasUpdate, updateValue, *include, *exclude); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func run(jp *jsonpath.JSONPath, doc any, hasUpdate bool, updateValue any, include, exclude bool) error {
	switch {
	case hasUpdate:
		result, err := jp.Update(doc, updateValue)
		if err != nil {
			return err
		}
		return printJSON(result)
	case include:
		result, err := jp.Include(doc)
		if err != nil {
			return err
		}
		return printJSON(result)
	case exclude:
		result, err := jp.Exclude(doc)
		if err != nil {
			return err
		}
		return printJSON(result)
	default:
		return jp.Execute(os.Stdout, doc)
	}
}

func printJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(b))
	return err
}

// readDocuments decodes one JSON value from each named file, or a
// single value from standard input when no files are given.
func readDocuments(files []string) ([]any, error) {
	if len(files) == 0 {
		doc, err := decodeOne(os.Stdin)
		if err != nil {
			return nil, err
		}
		return []any{doc}, nil
	}
	docs := make([]any, 0, len(files))
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		doc, err := decodeOne(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeOne(r io.Reader) (any, error) {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
