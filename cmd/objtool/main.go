// objtool inspects Wavefront OBJ models and MTL libraries without opening a
// window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/UnkushB/toy-obj-viewer/internal/logger"
	"github.com/UnkushB/toy-obj-viewer/internal/stage"
	"github.com/UnkushB/toy-obj-viewer/internal/texture"
	"github.com/UnkushB/toy-obj-viewer/pkg/wavefront"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "materials", "mtl":
		err = cmdMaterials(os.Stdout, args)
	case "check":
		err = cmdCheck(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `objtool - Wavefront OBJ/MTL inspection utility

Usage:
  objtool <command> [options] <file>

Commands:
  info <file.obj>          Show mesh, material and bounds statistics
  materials <file.obj|mtl> List materials with their properties and maps
  check <file.obj>...      Load models and report every warning

Options (all commands):
  -unknown-material create|fallback
  -no-textures             Do not decode texture maps
  -v                       Debug logging on stderr

Examples:
  objtool info models/cube.obj
  objtool materials -no-textures models/sponza.mtl
  objtool check -strict models/*.obj`)
}

// loadFlags are shared by every command.
type loadFlags struct {
	unknown    *string
	noTextures *bool
	verbose    *bool
}

func newFlagSet(name string) (*flag.FlagSet, *loadFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	lf := &loadFlags{
		unknown:    fs.String("unknown-material", "create", "Undefined usemtl names: create or fallback"),
		noTextures: fs.Bool("no-textures", false, "Do not decode texture maps"),
		verbose:    fs.Bool("v", false, "Debug logging on stderr"),
	}
	return fs, lf
}

// loader installs the logger and builds a model loader from the flags.
// The returned options carry a decoder for standalone MTL loads.
func (lf *loadFlags) loader() (stage.Loader, []wavefront.Option, error) {
	level := "warn"
	if *lf.verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		return nil, nil, err
	}

	policy, err := wavefront.ParseUnknownMaterialPolicy(*lf.unknown)
	if err != nil {
		return nil, nil, err
	}
	opts := []wavefront.Option{
		wavefront.WithLogger(logger.Named("wavefront")),
		wavefront.WithUnknownMaterial(policy),
	}

	if *lf.noTextures {
		return stage.NewLoader(nil, opts...), opts, nil
	}
	newDecoder := func() wavefront.ImageDecoder { return texture.NewDecoder(logger.Named("texture")) }
	mtlOpts := append(slices.Clip(opts), wavefront.WithDecoder(newDecoder()))
	return stage.NewLoader(newDecoder, opts...), mtlOpts, nil
}

func cmdInfo(w io.Writer, args []string) error {
	fs, lf := newFlagSet("info")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: objtool info <file.obj>")
	}
	loader, _, err := lf.loader()
	if err != nil {
		return err
	}

	m, err := loader.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	printInfo(w, m)
	return nil
}

func printInfo(w io.Writer, m *wavefront.Model) {
	fmt.Fprintf(w, "Model:     %s\n", m.SourcePath)
	fmt.Fprintf(w, "Meshes:    %d\n", len(m.Meshes))
	fmt.Fprintf(w, "Triangles: %d\n", m.TriangleCount())
	fmt.Fprintf(w, "Materials: %d\n", m.Materials.Len())
	fmt.Fprintf(w, "Area:      %.4f\n", m.Area)
	fmt.Fprintf(w, "Centroid:  (%.4f, %.4f, %.4f)\n", m.Centroid.X, m.Centroid.Y, m.Centroid.Z)
	fmt.Fprintf(w, "Radius:    %.4f\n", m.Radius)
	fmt.Fprintf(w, "Warnings:  %d\n", len(m.Warnings))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Meshes by material:")
	for i := range m.Meshes {
		mesh := &m.Meshes[i]
		mat := m.Material(mesh)
		alpha := ""
		if m.UsesAlpha(mesh) {
			alpha = " (alpha)"
		}
		fmt.Fprintf(w, "  %-3d %-24s %d triangles%s\n", i, mat.Name, mesh.TriangleCount(), alpha)
	}
}

func cmdMaterials(w io.Writer, args []string) error {
	fs, lf := newFlagSet("materials")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: objtool materials <file.obj|file.mtl>")
	}
	loader, opts, err := lf.loader()
	if err != nil {
		return err
	}

	path := fs.Arg(0)
	var table *wavefront.MaterialTable
	if strings.EqualFold(filepath.Ext(path), ".mtl") {
		table, err = wavefront.LoadMaterials(path, nil, opts...)
	} else {
		var m *wavefront.Model
		if m, err = loader.Load(path); err == nil {
			table = m.Materials
		}
	}
	if err != nil {
		return err
	}
	printMaterials(w, table)
	return nil
}

func printMaterials(w io.Writer, table *wavefront.MaterialTable) {
	for _, name := range table.Names() {
		id, _ := table.Lookup(name)
		mat := table.Get(id)
		fmt.Fprintf(w, "%s\n", mat.Name)
		fmt.Fprintf(w, "  Kd %.3f %.3f %.3f\n", mat.Diffuse.X, mat.Diffuse.Y, mat.Diffuse.Z)
		fmt.Fprintf(w, "  Ks %.3f %.3f %.3f\n", mat.Specular.X, mat.Specular.Y, mat.Specular.Z)
		fmt.Fprintf(w, "  Ns %.1f\n", mat.Shininess)
		fmt.Fprintf(w, "  d  %.3f\n", mat.Opacity)
		if mat.HasDiffuseMap() {
			fmt.Fprintf(w, "  map_Kd %s\n", describeImage(mat.DiffuseMap))
		}
		if mat.HasSpecularMap() {
			fmt.Fprintf(w, "  map_Ks %s\n", describeImage(mat.SpecularMap))
		}
	}
}

func describeImage(img *wavefront.Image) string {
	return fmt.Sprintf("%dx%d, %d channels", img.Width, img.Height, img.Channels)
}

// cmdCheck loads every file and reports warnings. It fails if any file
// could not be loaded, or with -strict if any warning was reported.
func cmdCheck(w io.Writer, args []string) error {
	fs, lf := newFlagSet("check")
	strict := fs.Bool("strict", false, "Treat warnings as errors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: objtool check <file.obj>...")
	}
	loader, _, err := lf.loader()
	if err != nil {
		return err
	}

	failed, warned := 0, 0
	for _, path := range fs.Args() {
		m, err := loader.Load(path)
		if err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
			logger.Debug("check failed", zap.String("path", path), zap.Error(err))
			continue
		}
		if len(m.Warnings) == 0 {
			fmt.Fprintf(w, "ok   %s (%d triangles)\n", path, m.TriangleCount())
			continue
		}
		warned++
		fmt.Fprintf(w, "WARN %s (%d triangles, %d warnings)\n", path, m.TriangleCount(), len(m.Warnings))
		for _, warning := range m.Warnings {
			fmt.Fprintf(w, "     %v\n", warning)
		}
	}

	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d files failed to load", failed, fs.NArg())
	case *strict && warned > 0:
		return fmt.Errorf("%d of %d files have warnings", warned, fs.NArg())
	}
	return nil
}
