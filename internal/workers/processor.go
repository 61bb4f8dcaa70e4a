package workers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/SalmaanRauf/Reel-Maker/internal/config"
	"github.com/SalmaanRauf/Reel-Maker/internal/crop"
	"github.com/SalmaanRauf/Reel-Maker/internal/services/ffmpeg"
	"github.com/SalmaanRauf/Reel-Maker/internal/services/yt"
	"github.com/SalmaanRauf/Reel-Maker/internal/utils"
	"github.com/SalmaanRauf/Reel-Maker/internal/video"
)

// Pipeline turns one job into a finished vertical clip:
// download -> cut -> trajectory -> crop apply -> captions.
type Pipeline struct {
	cfg      *config.Config
	detector crop.Detector
}

// NewPipeline wires a pipeline around a detection backend. detector may
// be nil, in which case smart crop degrades to a centered static crop.
func NewPipeline(cfg *config.Config, detector crop.Detector) *Pipeline {
	return &Pipeline{cfg: cfg, detector: detector}
}

// Start consumes the store's queue on a background goroutine.
func (p *Pipeline) Start(store *Store) {
	go func() {
		for id := range store.queue {
			store.update(id, func(j *Job) { j.Status = StatusRunning })

			job, _ := store.Get(id)
			log.Printf("[WORKER] job %s: processing %s [%s - %s]", job.ID, job.URL, job.Start, job.End)

			output, err := p.Run(context.Background(), job)
			if err != nil {
				log.Printf("[WORKER] job %s failed: %v", job.ID, err)
				store.update(id, func(j *Job) {
					j.Status = StatusFailed
					j.Error = err.Error()
				})
				continue
			}

			log.Printf("[WORKER] job %s done: %s", job.ID, output)
			store.update(id, func(j *Job) {
				j.Status = StatusDone
				j.Output = output
			})
		}
	}()
}

// Run executes the full pipeline for one job and returns the output path.
func (p *Pipeline) Run(ctx context.Context, job Job) (string, error) {
	videoID := yt.ExtractVideoID(job.URL)
	if videoID == "" {
		return "", fmt.Errorf("invalid YouTube URL")
	}

	utils.EnsureDir("tmp/clips")
	utils.EnsureDir("tmp/downloads")

	videoPath := fmt.Sprintf("tmp/downloads/%s.mp4", videoID)
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		videoPath, err = yt.DownloadVideo(job.URL)
		if err != nil {
			return "", err
		}
	}

	cutPath := fmt.Sprintf("tmp/clips/%s_cut.mp4", videoID)
	if err := ffmpeg.Cut(videoPath, cutPath, job.Start, job.End); err != nil {
		return "", err
	}

	finalPath := cutPath
	if job.SmartCrop {
		smartPath := fmt.Sprintf("tmp/clips/%s_smart.mp4", videoID)
		if err := p.smartCrop(ctx, cutPath, smartPath, job.Dynamic); err != nil {
			return "", err
		}
		finalPath = smartPath
	}

	if job.Caption {
		captionPath := fmt.Sprintf("tmp/clips/%s_caption.mp4", videoID)
		if err := p.burnCaptions(job, videoID, finalPath, captionPath); err != nil {
			return "", err
		}
		finalPath = captionPath
	}

	return finalPath, nil
}

// smartCrop runs the tracking engine over the whole cut clip and applies
// the resulting trajectory.
func (p *Pipeline) smartCrop(ctx context.Context, input, output string, dynamic bool) error {
	if p.detector == nil {
		// No detection capability: static centered crop
		return ffmpeg.ApplyStaticCrop(input, output, nil, p.cfg.TargetWidth, p.cfg.TargetHeight)
	}

	seg, err := video.OpenSegment(input, 0, 0)
	if err != nil {
		return err
	}
	defer seg.Close()

	gen := crop.NewGenerator(p.detector, crop.GeneratorOptions{
		TargetWidth:         p.cfg.TargetWidth,
		TargetHeight:        p.cfg.TargetHeight,
		SmoothingWindow:     p.cfg.SmoothingWindow,
		SampleStride:        p.cfg.SampleStride,
		ConfidenceThreshold: p.cfg.ConfidenceThreshold,
	})

	trajectory, err := gen.Generate(ctx, seg, 0, seg.Metadata().Duration)
	if err != nil {
		return err
	}

	if dynamic {
		return ffmpeg.ApplyDynamicCrop(input, output, trajectory, seg.FPS(), p.cfg.TargetWidth, p.cfg.TargetHeight)
	}
	return ffmpeg.ApplyStaticCrop(input, output, trajectory, p.cfg.TargetWidth, p.cfg.TargetHeight)
}

func (p *Pipeline) burnCaptions(job Job, videoID, input, output string) error {
	srtPath, err := yt.FindSubtitle(videoID, p.cfg.SubtitleLang)
	if err != nil {
		srtPath, err = yt.DownloadTranscript(job.URL, p.cfg.SubtitleLang)
		if err != nil {
			return fmt.Errorf("failed to fetch subtitles: %w", err)
		}
	}

	cutSrtPath := fmt.Sprintf("tmp/clips/%s_cut.srt", videoID)
	if err := utils.CutSRT(srtPath, cutSrtPath, job.Start, job.End); err != nil {
		return err
	}

	return ffmpeg.BurnCaptions(input, cutSrtPath, output)
}
