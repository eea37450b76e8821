package video

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lepinkainen/videocombiner/logging"
)

// Folder names created inside the processed folder
const (
	CombinedFolderName = "Combined"
	TempFolderName     = "TempScaledVideos"
)

// Options configures a Processor
type Options struct {
	Extensions          []string      // container extensions picked up from the folder
	Encode              EncodeOptions // encoder parameters
	Weights             PhaseWeights  // progress split between phases
	SkipSimilar         bool          // drop perceptually similar videos before combining
	SimilarityThreshold int           // maximum Hamming distance for two videos to count as similar
}

// DefaultOptions returns the options used when no configuration is given
func DefaultOptions() Options {
	return Options{
		Extensions:          DefaultExtensions,
		Encode:              DefaultEncodeOptions(),
		Weights:             DefaultPhaseWeights(),
		SimilarityThreshold: 5,
	}
}

// Processor discovers, analyzes and combines the videos of a folder.
// A Processor runs one folder at a time; concurrent runs against the same
// folder share the temporary folder and are not supported.
type Processor struct {
	Encoder Encoder
	Log     zerolog.Logger
	Options Options
}

// NewProcessor returns a Processor using enc for every external tool call
func NewProcessor(enc Encoder, log zerolog.Logger, opts Options) *Processor {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	return &Processor{
		Encoder: enc,
		Log:     logging.WithComponent(log, "processor"),
		Options: opts,
	}
}

// ProcessVideos analyzes every video in folder and combines them using mode.
// Progress is pushed to sink; the last report of a run that returns a nil
// error is always 100%. Only a missing encoder during the combine-all
// strategy, or an unreadable folder, aborts the run with an error.
func (p *Processor) ProcessVideos(folder string, sink ProgressSink, mode Mode, deleteTempFiles bool) (*Summary, error) {
	if sink == nil {
		sink = nopSink{}
	}

	catalog, summary, err := p.Analyze(folder, sink)
	if err != nil {
		return nil, err
	}
	if summary.Found == 0 {
		return summary, nil
	}

	combined, err := p.Combine(folder, catalog, sink, mode, deleteTempFiles)
	if combined != nil {
		summary.Outputs = combined.Outputs
		summary.Failed = combined.Failed
	}
	return summary, err
}

// Analyze discovers the videos in folder and probes them into a catalog.
// A folder without matching files is reported as complete and yields a
// summary with Found == 0.
func (p *Processor) Analyze(folder string, sink ProgressSink) (Catalog, *Summary, error) {
	if sink == nil {
		sink = nopSink{}
	}

	files, err := FindVideoFiles(folder, p.Options.Extensions)
	if err != nil {
		return nil, nil, err
	}

	summary := &Summary{Found: len(files)}
	if len(files) == 0 {
		sink.Report(ProgressReport{
			Percent: 100,
			Status:  fmt.Sprintf("No %s videos found in the selected folder.", extensionLabel(p.Options.Extensions)),
		})
		return nil, summary, nil
	}

	catalog := p.BuildCatalog(files, sink)
	summary.Analyzed = len(catalog)
	summary.Skipped = len(files) - len(catalog)

	if p.Options.SkipSimilar && len(catalog) > 1 {
		sink.Report(ProgressReport{Percent: p.Options.Weights.Analysis, Status: "Checking for similar videos..."})
		catalog, summary.Filtered = FilterSimilar(catalog, FrameHasher{Encoder: p.Encoder}, p.Options.SimilarityThreshold, p.Log)
	}

	return catalog, summary, nil
}

// BuildCatalog probes files in order and keeps those with a known resolution.
// Files that cannot be probed are logged and skipped.
func (p *Processor) BuildCatalog(files []string, sink ProgressSink) Catalog {
	if sink == nil {
		sink = nopSink{}
	}

	prober := Prober{Encoder: p.Encoder}
	total := len(files)
	catalog := make(Catalog, 0, total)

	sink.Report(ProgressReport{Percent: 0, Status: fmt.Sprintf("Found %d videos, analyzing...", total)})

	for i, file := range files {
		width, height, err := prober.Probe(file)
		if err != nil {
			p.Log.Warn().Str(logging.FieldPath, file).Err(err).Msg("skipped video")
		} else {
			catalog = append(catalog, VideoEntry{Path: file, Width: width, Height: height})
			p.Log.Debug().
				Str(logging.FieldPath, file).
				Int(logging.FieldWidth, width).
				Int(logging.FieldHeight, height).
				Msg("probed video")
		}

		processed := i + 1
		sink.Report(ProgressReport{
			Percent: phasePercent(0, p.Options.Weights.Analysis, processed, total),
			Status:  fmt.Sprintf("Analyzing video %d of %d...", processed, total),
		})
	}

	return catalog
}

// Combine merges the catalog into output files inside folder/Combined using
// mode and finishes with a 100% report. Failures of single groups or videos
// are logged, reported and recorded in the summary without stopping the run.
func (p *Processor) Combine(folder string, catalog Catalog, sink ProgressSink, mode Mode, deleteTempFiles bool) (*Summary, error) {
	if sink == nil {
		sink = nopSink{}
	}

	summary := &Summary{}
	var err error
	switch mode {
	case ModeCombineAll:
		err = p.combineAll(folder, catalog, sink, deleteTempFiles, summary)
	default:
		err = p.combineByAspectRatio(folder, catalog, sink, summary)
	}
	if err != nil {
		return summary, err
	}

	sink.Report(ProgressReport{Percent: 100, Status: "Processing complete!"})
	return summary, nil
}

// combineAll scales and pads every video to the largest width and height in
// the catalog, then joins the intermediates with a stream copy
func (p *Processor) combineAll(folder string, catalog Catalog, sink ProgressSink, deleteTempFiles bool, summary *Summary) error {
	group, target, ok := CombineAll(catalog)
	if !ok {
		return nil
	}

	w := p.Options.Weights
	log := p.Log.With().Str(logging.FieldMode, ModeCombineAll.String()).Logger()

	tempFolder := filepath.Join(folder, TempFolderName)
	if err := os.MkdirAll(tempFolder, 0o755); err != nil {
		return fmt.Errorf("failed to create temp folder: %w", err)
	}
	if deleteTempFiles {
		defer func() {
			sink.Report(ProgressReport{Percent: cleanupPercent, Status: "Cleaning up temporary files..."})
			if err := os.RemoveAll(tempFolder); err != nil {
				log.Warn().Str(logging.FieldPath, tempFolder).Err(err).Msg("could not delete temp folder")
			}
		}()
	}

	log.Info().
		Int(logging.FieldWidth, target.Width).
		Int(logging.FieldHeight, target.Height).
		Int("videos", len(group.Entries)).
		Msg("scaling videos to target resolution")

	var scaled []string
	total := len(group.Entries)
	for i, entry := range group.Entries {
		percent := phasePercent(w.Analysis, w.Scaling, i, total)
		sink.Report(ProgressReport{Percent: percent, Status: fmt.Sprintf("Processing video %d of %d...", i+1, total)})

		padded := filepath.Join(tempFolder, fmt.Sprintf("padded_%d.mp4", i))
		if err := p.encode(ScalePadArgs(entry.Path, padded, target, p.Options.Encode), padded); err != nil {
			if errors.Is(err, ErrEncoderUnavailable) {
				return fmt.Errorf("failed to scale %s: %w", entry.FileName(), err)
			}
			log.Error().Str(logging.FieldPath, entry.Path).Err(err).Msg("failed to scale video")
			summary.Failed = append(summary.Failed, entry.Path)
			sink.Report(ProgressReport{Percent: percent, Status: fmt.Sprintf("Failed to scale %s.", entry.FileName())})
			continue
		}
		scaled = append(scaled, padded)
	}

	checkpoint := w.Analysis + w.Scaling
	if len(scaled) == 0 {
		sink.Report(ProgressReport{Percent: checkpoint, Status: "No videos could be scaled."})
		return nil
	}

	sink.Report(ProgressReport{Percent: checkpoint, Status: "Combining all videos..."})

	combinedFolder := filepath.Join(folder, CombinedFolderName)
	if err := os.MkdirAll(combinedFolder, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	manifest := filepath.Join(tempFolder, "concat_all.txt")
	output := filepath.Join(combinedFolder, "combined_all.mp4")

	err := WriteManifest(manifest, scaled)
	if err == nil {
		err = p.encode(ConcatCopyArgs(manifest, output), output)
	}
	if err != nil {
		if errors.Is(err, ErrEncoderUnavailable) {
			return fmt.Errorf("failed to combine videos: %w", err)
		}
		log.Error().Str(logging.FieldOutput, output).Err(err).Msg("failed to combine all videos")
		summary.Failed = append(summary.Failed, CombineAllKey)
		sink.Report(ProgressReport{Percent: checkpoint, Status: "Failed to combine all videos."})
		return nil
	}

	summary.Outputs = append(summary.Outputs, output)
	log.Info().Str(logging.FieldOutput, output).Msg("combined all videos")
	return nil
}

// combineByAspectRatio re-encodes each aspect ratio group into its own output
func (p *Processor) combineByAspectRatio(folder string, catalog Catalog, sink ProgressSink, summary *Summary) error {
	groups := GroupByAspectRatio(catalog)
	if len(groups) == 0 {
		return nil
	}

	w := p.Options.Weights
	log := p.Log.With().Str(logging.FieldMode, ModeByAspectRatio.String()).Logger()

	combinedFolder := filepath.Join(folder, CombinedFolderName)
	if err := os.MkdirAll(combinedFolder, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	for g, group := range groups {
		percent := phasePercent(w.Analysis, w.Combination, g, len(groups))
		sink.Report(ProgressReport{
			Percent: percent,
			Status:  fmt.Sprintf("Combining group %d of %d (%s)...", g+1, len(groups), group.Key),
		})

		output, err := p.combineGroup(combinedFolder, group, log)
		if err != nil {
			log.Error().Str(logging.FieldGroup, group.Key).Err(err).Msg("failed to combine group")
			summary.Failed = append(summary.Failed, group.Key)
			sink.Report(ProgressReport{Percent: percent, Status: fmt.Sprintf("Failed to combine group %s.", group.Key)})
			continue
		}

		summary.Outputs = append(summary.Outputs, output)
		log.Info().
			Str(logging.FieldGroup, group.Key).
			Str(logging.FieldOutput, output).
			Int("videos", len(group.Entries)).
			Msg("combined group")
	}

	return nil
}

// combineGroup writes the group's manifest, runs the re-encoding concat and
// removes the manifest whatever the outcome
func (p *Processor) combineGroup(combinedFolder string, group Group, log zerolog.Logger) (string, error) {
	sanitized := SanitizeRatio(group.Key)
	manifest := filepath.Join(combinedFolder, fmt.Sprintf("concat_%s.txt", sanitized))
	output := filepath.Join(combinedFolder, fmt.Sprintf("combined_%s.mp4", sanitized))

	if err := WriteManifest(manifest, Catalog(group.Entries).Paths()); err != nil {
		return "", err
	}
	defer func() {
		if err := os.Remove(manifest); err != nil && !os.IsNotExist(err) {
			log.Warn().Str(logging.FieldPath, manifest).Err(err).Msg("could not delete manifest")
		}
	}()

	if err := p.encode(ConcatReencodeArgs(manifest, output, p.Options.Encode), output); err != nil {
		return "", err
	}
	return output, nil
}

// encode runs one encoder job and checks that it produced output. Exit status
// is treated as authoritative: a non-zero exit is a failed encode even when
// a partial file was written.
func (p *Processor) encode(args []string, output string) error {
	if _, err := p.Encoder.Invoke(args, true); err != nil {
		return err
	}
	return ValidateOutput(output)
}

// extensionLabel renders extensions for status messages, e.g. "MP4" or "MP4/MKV"
func extensionLabel(extensions []string) string {
	labels := make([]string, len(extensions))
	for i, ext := range extensions {
		labels[i] = strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return strings.Join(labels, "/")
}
