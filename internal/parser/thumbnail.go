package parser

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"media-parser/internal/logging"
	"media-parser/internal/metrics"

	"github.com/disintegration/imaging"
)

const (
	// thumbnailSize is the bounding box for video frame thumbnails.
	thumbnailSize = 400

	// maxFrameSeek is how far into a video the representative frame is
	// taken from. Shorter videos use their midpoint.
	maxFrameSeek = 30 * time.Second
)

// GetThumbnail produces a thumbnail for the file and returns the path of
// the written image. Video files get a frame extracted with FFmpeg; any
// failure there (FFmpeg missing, decode error) falls back to the generated
// placeholder, as do all non-video types.
func (p *MediaParser) GetThumbnail(ctx context.Context, documentPath, mimeType, fileName string) (string, error) {
	if strings.HasPrefix(mimeType, "video/") {
		start := time.Now()
		path, err := p.videoThumbnail(ctx, documentPath)
		metrics.ThumbnailGenerationDuration.WithLabelValues("frame").Observe(time.Since(start).Seconds())
		if err == nil {
			metrics.ThumbnailGenerationsTotal.WithLabelValues("frame", "success").Inc()
			return path, nil
		}
		metrics.ThumbnailGenerationsTotal.WithLabelValues("frame", "error").Inc()
		logging.Warn("Failed to extract video thumbnail for %s: %v", documentPath, err)
	}

	return p.placeholderThumbnail(documentPath, mimeType, fileName)
}

// placeholderThumbnail renders and writes the generated placeholder.
func (p *MediaParser) placeholderThumbnail(documentPath, mimeType, fileName string) (string, error) {
	start := time.Now()
	label := placeholderLabel(mimeType, fileName)

	img, err := renderPlaceholder(label)
	if err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("placeholder", "error").Inc()
		return "", fmt.Errorf("placeholder generation failed: %w", err)
	}

	path, err := p.writeThumbnail(img, documentPath)
	metrics.ThumbnailGenerationDuration.WithLabelValues("placeholder").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("placeholder", "error").Inc()
		return "", err
	}
	metrics.ThumbnailGenerationsTotal.WithLabelValues("placeholder", "success").Inc()
	return path, nil
}

// videoThumbnail extracts a representative frame with FFmpeg and writes it
// fitted to the thumbnail bounding box.
func (p *MediaParser) videoThumbnail(ctx context.Context, documentPath string) (string, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found: %w", err)
	}
	logging.Debug("Using ffmpeg: %s", ffmpegPath)

	seek := frameSeek(ctx, documentPath)
	ffmpegStart := time.Now()

	frame, err := extractFrame(ctx, documentPath, seek)
	if err != nil {
		logging.Debug("FFmpeg seek at %s failed for %s: %v, retrying from start", seek, documentPath, err)
		frame, err = extractFrame(ctx, documentPath, 0)
		if err != nil {
			return "", err
		}
	}
	metrics.ThumbnailFFmpegDuration.Observe(time.Since(ffmpegStart).Seconds())

	thumb := imaging.Fit(frame, thumbnailSize, thumbnailSize, imaging.Lanczos)
	return p.writeThumbnail(thumb, documentPath)
}

// extractFrame runs FFmpeg to decode a single frame at the given offset.
// A zero seek reads the first decodable frame.
func extractFrame(ctx context.Context, documentPath string, seek time.Duration) (image.Image, error) {
	args := []string{}
	if seek > 0 {
		args = append(args, "-ss", strconv.FormatFloat(seek.Seconds(), 'f', 2, 64))
	}
	args = append(args,
		"-i", documentPath,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %v, stderr: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output for %s", documentPath)
	}

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ffmpeg output: %w", err)
	}
	return img, nil
}

// frameSeek picks the frame offset: 30 seconds in, or the midpoint of
// shorter videos. When the duration cannot be probed the first second is
// used.
func frameSeek(ctx context.Context, documentPath string) time.Duration {
	duration, err := probeDuration(ctx, documentPath)
	if err != nil {
		logging.Debug("Could not probe duration for %s: %v", documentPath, err)
		return time.Second
	}
	if half := duration / 2; half < maxFrameSeek {
		return half
	}
	return maxFrameSeek
}

// probeDuration asks ffprobe for the container duration.
func probeDuration(ctx context.Context, documentPath string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		documentPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output %q: %w", strings.TrimSpace(string(out)), err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// writeThumbnail encodes the image into the scratch directory, WebP via
// libvips when available, PNG otherwise. The file name is derived from the
// source path so repeated runs overwrite rather than accumulate.
func (p *MediaParser) writeThumbnail(img image.Image, sourcePath string) (string, error) {
	hash := md5.Sum([]byte(sourcePath))

	if IsVipsAvailable() {
		if data, err := exportWebP(img); err == nil {
			outPath := filepath.Join(p.scratchDir, fmt.Sprintf("%x.webp", hash))
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return "", fmt.Errorf("failed to write thumbnail: %w", err)
			}
			return outPath, nil
		} else {
			logging.Debug("WebP export failed, falling back to PNG: %v", err)
		}
	}

	outPath := filepath.Join(p.scratchDir, fmt.Sprintf("%x.png", hash))
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close thumbnail file: %w", err)
	}
	return outPath, nil
}
