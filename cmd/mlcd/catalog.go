package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wesen/mlcd/internal/templates"
	"github.com/wesen/mlcd/internal/ui"
	"github.com/wesen/mlcd/pkg/schema"
)

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [component]",
		Short: "List component parameter schemas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				ui.Banner("component schemas")
				var rows [][]string
				for _, k := range reg.Keys() {
					s, _ := reg.Schema(k)
					rows = append(rows, []string{k, fmt.Sprint(len(s))})
				}
				ui.Table([]string{"COMPONENT", "PARAMS"}, rows)
				return nil
			}

			key := strings.ToUpper(args[0])
			s, ok := reg.Schema(key)
			if !ok {
				return fail(fmt.Errorf("unknown component %q", args[0]))
			}
			ui.Banner(key)
			var rows [][]string
			for _, p := range s {
				rows = append(rows, []string{p.Name, string(p.Type), fmt.Sprint(p.Default), describe(p.Field)})
			}
			ui.Table([]string{"PARAM", "TYPE", "DEFAULT", "ALLOWED"}, rows)
			return nil
		},
	}
}

func describe(f schema.Field) string {
	switch {
	case len(f.Options) > 0:
		opts := make([]string, len(f.Options))
		for i, o := range f.Options {
			opts[i] = fmt.Sprint(o)
		}
		return strings.Join(opts, " | ")
	case f.Min != nil && f.Max != nil:
		return fmt.Sprintf("%g … %g", *f.Min, *f.Max)
	case f.Min != nil:
		return fmt.Sprintf("≥ %g", *f.Min)
	case f.Max != nil:
		return fmt.Sprintf("≤ %g", *f.Max)
	}
	return ""
}

func templatesCmd() *cobra.Command {
	var palette bool
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List starter templates and palette items",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := templates.Builtin()
			if err != nil {
				return fail(err)
			}
			if palette {
				ui.Banner("palette")
				for _, c := range lib.Categories() {
					fmt.Println(ui.Info.Sprint(c.Title))
					var rows [][]string
					for _, s := range c.Sections {
						for _, it := range s.Items {
							rows = append(rows, []string{s.Title, it.Label, it.Type, it.Hint})
						}
					}
					ui.Table([]string{"SECTION", "ITEM", "TYPE", "HINT"}, rows)
					fmt.Println()
				}
				return nil
			}

			ui.Banner("templates")
			var rows [][]string
			for _, t := range lib.Templates() {
				rows = append(rows, []string{t.ID, t.Name, fmt.Sprintf("%d/%d", len(t.Nodes), len(t.Edges)), t.Description})
			}
			ui.Table([]string{"ID", "NAME", "NODES/EDGES", "DESCRIPTION"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&palette, "palette", false, "list palette items instead")
	return cmd
}
