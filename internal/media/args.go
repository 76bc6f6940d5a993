// Package media builds ffmpeg argument vectors for the supported job
// kinds and the concat-demuxer manifest they consume.
package media

import "fmt"

// Output geometry for image-to-video conversion. The portrait frame size
// is fixed regardless of the source image.
const (
	ImageToVideoWidth  = 1080
	ImageToVideoHeight = 1920
)

// DefaultLength and DefaultFrameRate apply when an image-to-video request
// omits the fields.
const (
	DefaultLength    = 20.0
	DefaultFrameRate = 25
)

// zoompanRate is the fixed zoom increment per output frame. Requests may
// carry a zoom_speed field but it does not feed into the filter.
const zoompanRate = 0.0015

// ImageToVideoArgs builds the argument vector turning a still image into
// a pan/zoom video of the given length in seconds at the given frame
// rate.
func ImageToVideoArgs(imagePath, outputPath string, length float64, frameRate int) []string {
	filter := fmt.Sprintf(
		"zoompan=z='min(zoom+%g,1.5)':d=1:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%d,format=yuv420p",
		zoompanRate, ImageToVideoWidth, ImageToVideoHeight, frameRate,
	)

	return []string{
		"-y",
		"-loop", "1",
		"-i", imagePath,
		"-vf", filter,
		"-t", fmt.Sprintf("%.2f", length),
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		outputPath,
	}
}

// TrimArgs builds the argument vector for a stream-copy extraction from
// start to end. An empty end runs to the end of the stream. Timestamps
// are passed through verbatim; ffmpeg rejects invalid ones.
func TrimArgs(inputPath, outputPath, start, end string) []string {
	args := []string{
		"-y",
		"-i", inputPath,
		"-ss", start,
	}
	if end != "" {
		args = append(args, "-to", end)
	}
	return append(args,
		"-c", "copy",
		outputPath,
	)
}

// ComposeArgs builds the argument vector combining the video stream of
// one input with the audio stream of another. Video is copied untouched,
// audio is re-encoded to AAC, and the output stops at the shorter of the
// two.
func ComposeArgs(videoPath, audioPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		outputPath,
	}
}

// ConcatArgs builds the argument vector stream-copying all manifest
// entries into one output. Codec compatibility across inputs is the
// engine's constraint, not validated here.
func ConcatArgs(listPath, outputPath string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outputPath,
	}
}
