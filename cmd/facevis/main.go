// facevis renders a reconstructed face mesh composited over its source
// image. The mesh comes either from a blendshape model weighted by the
// reconstruction result, or directly from an OBJ file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/faceforge/facevis/internal/blendshape"
	"github.com/faceforge/facevis/internal/config"
	"github.com/faceforge/facevis/internal/logger"
	"github.com/faceforge/facevis/internal/recon"
	"github.com/faceforge/facevis/internal/remap"
	"github.com/faceforge/facevis/internal/render"
	"github.com/faceforge/facevis/pkg/formats"
	"github.com/faceforge/facevis/pkg/mesh"
)

func main() {
	opts, err := config.ParseFlags()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run with -h for usage.")
		os.Exit(1)
	}

	if err := logger.Init(opts.LogLevel, opts.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(opts); err != nil {
		logger.Error("visualization failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(opts *config.Options) error {
	res, err := recon.LoadResult(opts.ResultPath)
	if err != nil {
		return err
	}

	background, err := render.LoadImage(opts.ImagePath)
	if err != nil {
		return err
	}
	logger.Info("loaded background",
		zap.String("path", opts.ImagePath),
		zap.Int("width", background.Bounds().Dx()),
		zap.Int("height", background.Bounds().Dy()),
	)

	m, err := buildMesh(opts, res)
	if err != nil {
		return err
	}

	if opts.OutputMeshPath != "" {
		if err := formats.WriteOBJ(opts.OutputMeshPath, m); err != nil {
			return err
		}
		logger.Info("wrote composed mesh", zap.String("path", opts.OutputMeshPath))
	}

	levels := opts.SubdivisionLevels()
	tm := m.Triangulate()
	for i := 0; i < levels; i++ {
		tm = tm.Subdivide()
	}
	logger.Info("processed mesh",
		zap.Int("vertices", len(tm.Vertices)),
		zap.Int("triangles", len(tm.Faces)),
		zap.Int("subdivisions", levels),
	)

	overlays := render.Overlays{
		TexturePath:          opts.TexturePath,
		NormalsPath:          opts.NormalsPath,
		AmbientOcclusionPath: opts.AmbientOcclusionPath,
	}
	if opts.FacesPath != "" {
		quads, err := formats.LoadIndices(opts.FacesPath)
		if err != nil {
			return err
		}
		faces, err := remap.Remap(quads, levels)
		if err != nil {
			return err
		}
		overlays.Faces = faces
		logger.Info("restricted face set",
			zap.Int("quads", len(quads)),
			zap.Int("triangles", len(faces)),
		)
	}

	settings := render.DefaultSettings()
	if opts.SettingsPath != "" {
		if settings, err = render.LoadSettings(opts.SettingsPath); err != nil {
			return err
		}
	}

	binding := render.NewBinding(render.NewRasterizer(), settings)
	req, err := binding.Bind(tm, res, background, overlays)
	if err != nil {
		return err
	}
	img, err := binding.Submit(req)
	if err != nil {
		return err
	}

	if err := render.SaveImage(opts.OutputPath, img); err != nil {
		return err
	}
	logger.Info("wrote output image",
		zap.String("path", opts.OutputPath),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return nil
}

// buildMesh returns the mesh to render: the directly supplied OBJ, or
// the blendshape set composed with the reconstructed weights.
func buildMesh(opts *config.Options, res *recon.Result) (*mesh.Mesh, error) {
	if opts.MeshPath != "" {
		logger.Info("using mesh directly", zap.String("path", opts.MeshPath))
		m, err := formats.LoadOBJ(opts.MeshPath)
		if err != nil {
			return nil, err
		}
		m.ComputeNormals()
		return m, nil
	}

	set, err := blendshape.Load(opts.BlendshapeDir, opts.BlendshapeCount, opts.InitNaming)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded blendshapes",
		zap.String("dir", opts.BlendshapeDir),
		zap.Int("shapes", set.Count()+1),
	)
	return blendshape.Compose(set, res.Weights())
}
