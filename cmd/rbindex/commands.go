// Copyright 2021 Andrew Werner.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajwerner/rbtree"
	"github.com/ajwerner/rbtree/collection"
	"github.com/ajwerner/rbtree/internal/config"
	"github.com/ajwerner/rbtree/internal/logging"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	dataPath string
	logLevel string
	jsonLogs bool
	index    string

	logger *slog.Logger
	coll   *collection.Collection
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "rbindex",
		Short:        "Query and maintain red-black tree indices over a dataset",
		SilenceUsage: true,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.coll != nil {
				a.coll.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "dataset YAML file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the dataset)")
	root.PersistentFlags().BoolVar(&a.jsonLogs, "json-logs", false, "log in JSON")

	root.AddCommand(
		a.demoCmd(),
		a.scanCmd(),
		a.searchCmd(),
		a.lookupCmd(),
		a.updateCmd(),
		a.dotCmd(),
		a.verifyCmd(),
	)
	return root
}

func (a *app) indexFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.index, "index", "", "index name (defaults to the dataset's current index)")
}

// open loads the dataset and builds its collection.
func (a *app) open(cmd *cobra.Command) error {
	if a.dataPath == "" {
		return errors.New("--data is required")
	}
	d, err := config.Load(a.dataPath)
	if err != nil {
		return err
	}
	lc := logging.Config{Level: d.Log.Level, JSON: d.Log.JSON || a.jsonLogs, Output: cmd.ErrOrStderr()}
	if a.logLevel != "" {
		lc.Level = a.logLevel
	}
	if a.logger, err = logging.New(lc); err != nil {
		return err
	}
	c, err := d.Build(collection.WithLogger(a.logger))
	if c == nil {
		return err
	}
	if err != nil {
		a.logger.Warn("records rejected while loading dataset", slog.Any("error", err))
	}
	a.coll = c
	a.logger.Debug("loaded dataset",
		slog.String("path", a.dataPath),
		slog.Int("records", c.Len()),
		slog.Int("indices", len(c.Indices())),
	)
	return nil
}

// selected returns the index named by --index or the current index.
func (a *app) selected() (*collection.Index, error) {
	if a.index != "" {
		return a.coll.Index(a.index)
	}
	if idx := a.coll.CurrentIndex(); idx != nil {
		return idx, nil
	}
	return nil, fmt.Errorf("%w: pass --index", collection.ErrIndexNotFound)
}

// parseValues parses args as values of the leading fields of idx.
func (a *app) parseValues(idx *collection.Index, args []string) ([]collection.Value, error) {
	fields := idx.Fields()
	if len(args) > len(fields) {
		return nil, fmt.Errorf("index %q has %d fields, got %d values", idx.Name(), len(fields), len(args))
	}
	schema := a.coll.Schema()
	vals := make([]collection.Value, len(args))
	for i, arg := range args {
		p, err := schema.Position(fields[i])
		if err != nil {
			return nil, err
		}
		if vals[i], err = collection.ParseValue(schema[p].Kind, arg); err != nil {
			return nil, fmt.Errorf("field %q: %w", fields[i], err)
		}
	}
	return vals, nil
}

func printRecords(w io.Writer, rs []*collection.Record) {
	for _, r := range rs {
		fmt.Fprintln(w, r)
	}
}

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Insert 5 3 8 1 4 7 9 into a red-black tree and show it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			st := newStyles(w)
			s := rbtree.MakeSet[int](cmp.Compare[int])
			for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
				s.Insert(k)
				if err := s.Verify(); err != nil {
					return fmt.Errorf("after inserting %d: %w", k, err)
				}
				fmt.Fprintf(w, "insert %d: %s\n", k, s)
			}
			var keys []string
			it := s.MakeIter()
			for it.Advance() {
				keys = append(keys, fmt.Sprint(it.Cur()))
			}
			fmt.Fprintln(w, st.Title.Render("in order:"), strings.Join(keys, " "))
			writeTree(w, st, s.Walk)
			return nil
		},
	}
}

func (a *app) scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Print the records in index order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd); err != nil {
				return err
			}
			idx, err := a.selected()
			if err != nil {
				return err
			}
			cur := idx.Scan()
			for cur.Advance() {
				fmt.Fprintln(cmd.OutOrStdout(), cur.Record())
			}
			return cur.Err()
		},
	}
	a.indexFlag(cmd)
	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search VALUE...",
		Short: "Print the records whose leading index fields equal the values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd); err != nil {
				return err
			}
			idx, err := a.selected()
			if err != nil {
				return err
			}
			vals, err := a.parseValues(idx, args)
			if err != nil {
				return err
			}
			rs, err := idx.Search(vals...)
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), rs)
			return nil
		},
	}
	a.indexFlag(cmd)
	return cmd
}

func (a *app) lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup VALUE...",
		Short: "Print the record whose index key equals the values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd); err != nil {
				return err
			}
			idx, err := a.selected()
			if err != nil {
				return err
			}
			vals, err := a.parseValues(idx, args)
			if err != nil {
				return err
			}
			r, err := idx.Lookup(vals...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r)
			return nil
		},
	}
	a.indexFlag(cmd)
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	var field, value string
	cmd := &cobra.Command{
		Use:   "update --field F --value V KEY...",
		Short: "Set a field of the record with the given index key, then scan the index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd); err != nil {
				return err
			}
			idx, err := a.selected()
			if err != nil {
				return err
			}
			vals, err := a.parseValues(idx, args)
			if err != nil {
				return err
			}
			r, err := idx.Lookup(vals...)
			if err != nil {
				return err
			}
			schema := a.coll.Schema()
			p, err := schema.Position(field)
			if err != nil {
				return err
			}
			v, err := collection.ParseValue(schema[p].Kind, value)
			if err != nil {
				return fmt.Errorf("field %q: %w", field, err)
			}
			if err := r.Set(field, v); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, newStyles(w).Title.Render("updated:"), r)
			for r := range idx.All() {
				fmt.Fprintln(w, r)
			}
			return nil
		},
	}
	a.indexFlag(cmd)
	cmd.Flags().StringVar(&field, "field", "", "field to set")
	cmd.Flags().StringVar(&value, "value", "", "new value")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func (a *app) dotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Write an index's tree in the graphviz dot language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd); err != nil {
				return err
			}
			idx, err := a.selected()
			if err != nil {
				return err
			}
			return idx.WriteDot(cmd.OutOrStdout())
		},
	}
	a.indexFlag(cmd)
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the red-black invariants of every index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			st := newStyles(w)
			var failed error
			for _, idx := range a.coll.Indices() {
				if err := idx.Verify(); err != nil {
					fmt.Fprintf(w, "%s %v\n", st.Red.Render("FAIL"), err)
					failed = errors.Join(failed, err)
					continue
				}
				fmt.Fprintf(w, "%s %s %s\n", st.OK.Render("ok"), idx.Name(),
					st.Muted.Render(fmt.Sprintf("(%d records, height %d)", idx.Len(), idx.Height())))
			}
			return failed
		},
	}
}
