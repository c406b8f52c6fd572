package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/creativemagic/thumbstudio/internal/config"
	"github.com/creativemagic/thumbstudio/internal/fonts"
	"github.com/creativemagic/thumbstudio/internal/utils"
	"github.com/creativemagic/thumbstudio/pkg/canvas"
	"github.com/creativemagic/thumbstudio/pkg/detect"
	"github.com/creativemagic/thumbstudio/pkg/facecrop"
	"github.com/creativemagic/thumbstudio/pkg/geometry"
	"github.com/creativemagic/thumbstudio/pkg/imageio"
	"github.com/creativemagic/thumbstudio/pkg/ollama"
	"github.com/creativemagic/thumbstudio/pkg/project"
	"github.com/creativemagic/thumbstudio/pkg/taskqueue"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func run() error {
	var args cliArgs
	cliCtx := kong.Parse(
		&args,
		kong.Name("thumbstudio"),
		kong.UsageOnError(),
	)
	return cliCtx.Run()
}

type cliArgs struct {
	Render renderCmd `cmd:"" help:"Render a project file to a thumbnail image"`
	Detect detectCmd `cmd:"" help:"Detect faces in an image and print their boxes"`
	Crop   cropCmd   `cmd:"" name:"crop-faces" help:"Cut padded square face crops from an image"`
	Config configCmd `cmd:"" help:"Write the default configuration file"`
}

func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.NewConsoleWriter()).Level(level)
	zerolog.DefaultContextLogger = &log.Logger
}

// loadConfig reads the named config file, falls back to the user config if
// one exists, and to built-in defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	if p := config.GetConfigPath(); utils.FileExists(p) {
		return config.LoadFromFile(p)
	}
	return config.Default(), nil
}

type renderCmd struct {
	Project    string  `arg:"" help:"Path to a project JSON file"`
	Output     string  `short:"o" help:"Output image path (default: <output dir>/creative_magic_<id>.<format>)"`
	Background string  `help:"Background image path or URL, overrides the project's"`
	Scale      float64 `help:"Display scale used for the selection outline" default:"1.0"`
	Config     string  `help:"Path to a config file"`
	Verbose    bool    `help:"Enable verbose logging" default:"false"`
}

func (cmd *renderCmd) Run() error {
	setupLogging(cmd.Verbose)

	cfg, err := loadConfig(cmd.Config)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cmd.Project)
	if err != nil {
		return fmt.Errorf("failed to read project file: %w", err)
	}
	var p project.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse project file: %w", err)
	}

	doc, preset, err := project.OpenDocument(&p)
	if err != nil {
		return err
	}

	renderer := canvas.NewRenderer(doc, imageio.NewLoader(), fonts.NewRegistry(), canvas.Options{
		Preset:       preset,
		DisplayScale: cmd.Scale,
		Touch:        cfg.Canvas.Touch,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	background := cmd.Background
	if background == "" {
		background = p.BackgroundURL
	}

	log.Debug().Str("preset", string(preset)).Int("elements", doc.Len()).Msg("rendering project")
	surface, err := renderer.RenderDocument(ctx, background)
	if err != nil {
		return err
	}

	output := cmd.Output
	if output == "" {
		if err := utils.EnsureDir(cfg.Output.OutputDir); err != nil {
			return err
		}
		output = utils.OutputFilename(cfg.Output.OutputDir, "creative_magic_"+p.ID, "", cfg.Output.DefaultFormat)
	}
	if err := imageio.Save(surface, output, cfg.Crop.Quality); err != nil {
		return err
	}

	log.Info().Msgf("wrote %s", output)
	return nil
}

type detectCmd struct {
	Image   string `arg:"" help:"Image path or URL"`
	Cascade string `help:"Path to a binary face cascade; runs detection locally"`
	Model   string `help:"Vision model name (remote detection)"`
	Server  string `help:"Model server URL (remote detection)"`
	Config  string `help:"Path to a config file"`
	Verbose bool   `help:"Enable verbose logging" default:"false"`
}

func (cmd *detectCmd) Run() error {
	setupLogging(cmd.Verbose)

	cfg, err := loadConfig(cmd.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	boxes, err := detectFaces(ctx, cfg, cmd.Image, cmd.Cascade, cmd.Model, cmd.Server)
	if err != nil {
		return err
	}

	log.Info().Msgf("found %d face(s)", len(boxes))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(boxes)
}

// detectFaces loads the image and runs whichever detector the flags select:
// a local cascade when one is given, the remote vision model otherwise.
func detectFaces(ctx context.Context, cfg *config.Config, src, cascadePath, model, server string) ([]geometry.Box, error) {
	img, err := imageio.NewLoader().Load(ctx, src)
	if err != nil {
		return nil, err
	}

	if cascadePath == "" {
		cascadePath = cfg.Detect.CascadePath
	}
	if cascadePath != "" {
		cascade, err := os.ReadFile(cascadePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read face cascade: %w", err)
		}
		detector, err := detect.NewPigoDetector(cascade)
		if err != nil {
			return nil, err
		}
		return detector.DetectFaces(ctx, img)
	}

	if model == "" {
		model = cfg.Detect.Model
	}
	if server == "" {
		server = cfg.Detect.ServerURL
	}
	client, err := ollama.NewClient(server)
	if err != nil {
		return nil, err
	}
	detector := detect.NewVisionDetector(client, model)

	// Model calls go through the queue so rate limits are retried with
	// backoff instead of failing the run.
	queue := taskqueue.New(0)
	var boxes []geometry.Box
	err = queue.Do(ctx, func(ctx context.Context) error {
		var derr error
		boxes, derr = detector.DetectFaces(ctx, img)
		return derr
	})
	return boxes, err
}

type cropCmd struct {
	Image    string  `arg:"" help:"Image path or URL"`
	Boxes    string  `help:"Path to a JSON file with face boxes; detected when omitted"`
	Cascade  string  `help:"Path to a binary face cascade; runs detection locally"`
	Model    string  `help:"Vision model name (remote detection)"`
	Server   string  `help:"Model server URL (remote detection)"`
	Padding  float64 `help:"Padding fraction added around each box" default:"-1"`
	NoSquare bool    `help:"Keep the padded aspect ratio instead of squaring"`
	Format   string  `help:"Crop output format: jpg|png|webp"`
	Quality  int     `help:"Crop output quality (1-100)" default:"0"`
	OutDir   string  `help:"Output directory"`
	Config   string  `help:"Path to a config file"`
	Verbose  bool    `help:"Enable verbose logging" default:"false"`
}

func (cmd *cropCmd) Run() error {
	setupLogging(cmd.Verbose)

	cfg, err := loadConfig(cmd.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var boxes []geometry.Box
	if cmd.Boxes != "" {
		data, err := os.ReadFile(cmd.Boxes)
		if err != nil {
			return fmt.Errorf("failed to read boxes file: %w", err)
		}
		if err := json.Unmarshal(data, &boxes); err != nil {
			return fmt.Errorf("failed to parse boxes file: %w", err)
		}
	} else {
		boxes, err = detectFaces(ctx, cfg, cmd.Image, cmd.Cascade, cmd.Model, cmd.Server)
		if err != nil {
			return err
		}
	}
	if len(boxes) == 0 {
		log.Warn().Msg("no faces to crop")
		return nil
	}

	opts := cropOptions(cmd, cfg)
	crops, err := facecrop.New(nil).CropFaces(ctx, cmd.Image, boxes, opts)
	if err != nil {
		return err
	}

	outDir := cmd.OutDir
	if outDir == "" {
		outDir = cfg.Output.OutputDir
	}
	if err := utils.EnsureDir(outDir); err != nil {
		return err
	}

	base := filepath.Base(cmd.Image)
	for i, data := range crops {
		path := utils.OutputFilename(outDir, base, fmt.Sprintf("_face_%d", i+1), string(opts.Format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to save crop: %w", err)
		}
		log.Info().Msgf("wrote %s", path)
	}
	return nil
}

func cropOptions(cmd *cropCmd, cfg *config.Config) facecrop.Options {
	opts := facecrop.Options{
		Padding:  cfg.Crop.Padding,
		NoSquare: !cfg.Crop.ToSquare,
		Format:   imageio.Format(cfg.Crop.Format),
		Quality:  cfg.Crop.Quality,
	}
	if cmd.Padding >= 0 {
		opts.Padding = cmd.Padding
	}
	if cmd.NoSquare {
		opts.NoSquare = true
	}
	if cmd.Format != "" {
		if f, err := imageio.ParseFormat(cmd.Format); err == nil {
			opts.Format = f
		}
	}
	if cmd.Quality > 0 {
		opts.Quality = cmd.Quality
	}
	return opts
}

type configCmd struct {
	Path    string `arg:"" optional:"" help:"Where to write the config (default: user config path)"`
	Verbose bool   `help:"Enable verbose logging" default:"false"`
}

func (cmd *configCmd) Run() error {
	setupLogging(cmd.Verbose)

	path := cmd.Path
	if path == "" {
		path = config.GetConfigPath()
	}
	if err := config.Default().SaveToFile(path); err != nil {
		return err
	}
	log.Info().Msgf("wrote %s", path)
	return nil
}
