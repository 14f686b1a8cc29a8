// Command pixelforge is a minimal example driver over the core library.
// The real build surface (DSL builder package, asset pipeline, project
// config) is out of scope for this repository; this command exists only to
// demonstrate Compile end to end against a small built-in game model.
package main

import (
	"fmt"
	"os"

	"pixelforge"
	"pixelforge/internal/ir"
	"pixelforge/internal/model"
)

func demoGame() *model.Game {
	g := model.NewGame("demo")
	g.Variables = append(g.Variables, &model.Variable{Name: "counter", Kind: ir.U8})
	g.StartScene = "main"
	g.Scenes = append(g.Scenes, &model.Scene{
		Name: "main",
		Update: []ir.Stmt{
			&ir.Assign{Target: "counter", Op: ir.ASSIGN_ADD, Value: ir.Lit(ir.U8, 1)},
		},
	})
	return g
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <output.c>\n", os.Args[0])
		os.Exit(1)
	}
	outputPath := os.Args[1]

	result, err := pixelforge.Compile(demoGame(), pixelforge.DefaultCompileOptions())
	if err != nil {
		for _, d := range result.Diagnostics {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, []byte(result.Source), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Compiled demo game -> %s\n", outputPath)
}
