package config

import (
	"flag"
	"fmt"
	"os"
)

var (
	flagImg        = flag.String("img", "", "Background image (required)")
	flagRes        = flag.String("res", "", "Reconstruction result file (required)")
	flagOutput     = flag.String("output", "", "Output image file (required)")
	flagMesh       = flag.String("mesh", "", "Mesh to render directly, bypassing blendshape composition")
	flagOutputMesh = flag.String("output-mesh", "", "Write the composed mesh to this OBJ file")
	flagBSPath     = flag.String("init-bs-path", "", "Blendshape directory")
	flagBSCount    = flag.Int("blendshape-count", DefaultBlendshapeCount, "Number of expression blendshapes")
	flagFaces      = flag.String("faces", "", "Face-index selection file (pre-triangulation quad indices)")
	flagAO         = flag.String("ambient-occlusion", "", "Per-vertex ambient occlusion file")
	flagTexture    = flag.String("texture", "", "Texture image for the mesh")
	flagNormals    = flag.String("normals", "", "Per-vertex normal override file")
	flagNoSubdiv   = flag.Bool("no-subdivision", false, "Skip mesh subdivision")
	flagInit       = flag.Bool("init", false, "Use the initial-reconstruction blendshape naming (Binit_<i>.obj)")
	flagSettings   = flag.String("settings", "", "Rendering settings file")
	flagLogLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flagLogFile    = flag.String("log-file", "", "Log file path (rotated)")
)

// ParseFlags parses command-line flags and returns the validated run
// options. Call this early in main(). flag.ErrHelp passes through so
// the caller can exit cleanly on -h.
func ParseFlags() (*Options, error) {
	flag.CommandLine.Init(flag.CommandLine.Name(), flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	opts := &Options{
		ImagePath:            *flagImg,
		ResultPath:           *flagRes,
		OutputPath:           *flagOutput,
		MeshPath:             *flagMesh,
		OutputMeshPath:       *flagOutputMesh,
		BlendshapeDir:        *flagBSPath,
		BlendshapeCount:      *flagBSCount,
		InitNaming:           *flagInit,
		FacesPath:            *flagFaces,
		AmbientOcclusionPath: *flagAO,
		TexturePath:          *flagTexture,
		NormalsPath:          *flagNormals,
		SettingsPath:         *flagSettings,
		NoSubdivision:        *flagNoSubdiv,
		LogLevel:             *flagLogLevel,
		LogFile:              *flagLogFile,
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
