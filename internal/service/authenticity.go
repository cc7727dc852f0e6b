package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/GoldenFighter/contestboard/internal/models"
)

const (
	kb = int64(1024)
	mb = int64(1024 * 1024)

	// recencyWindow is how close to the evaluation instant a capture must be
	// to count as recent for contest eligibility.
	recencyWindow = 2 * time.Hour
)

// cameraFilenamePatterns mark filenames produced by camera capture flows.
var cameraFilenamePatterns = []string{"img_", "photo_", "pic_", "camera_", "snap_"}

// appFilenameTokens map filename fragments to the app that likely produced
// the file. Used both for the from-camera heuristic and the descriptive
// originating-app field. Ordered so a filename carrying several tokens
// always resolves to the same app.
var appFilenameTokens = []struct {
	token string
	app   string
}{
	{"whatsapp", "WhatsApp"},
	{"instagram", "Instagram"},
	{"snapchat", "Snapchat"},
	{"telegram", "Telegram"},
	{"signal", "Signal"},
	{"camera", "Camera"},
}

// deviceFilenameTokens guess a device make from vendor-style filename stems.
var deviceFilenameTokens = map[string]string{
	"img_": "Apple",
	"dsc":  "Sony",
	"pxl_": "Google",
}

// knownMobileResolutions are common phone camera sensor outputs. Swapped
// width/height counts as a match.
var knownMobileResolutions = [][2]int{
	{4032, 3024},
	{4000, 3000},
	{4608, 3456},
	{3264, 2448},
	{4624, 3468},
	{3024, 4032},
	{1920, 1080},
	{1280, 720},
}

// RawImageInfo is the undigested file metadata the scorer works from.
type RawImageInfo struct {
	FileName     string
	FileSize     int64
	LastModified time.Time
	Width        int
	Height       int
	MimeType     string
}

// ContestValidation is the eligibility verdict for an image entry, separate
// from the raw authenticity score. Every failed check contributes a reason;
// the pipeline surfaces all of them, not just the first.
type ContestValidation struct {
	IsValid bool     `json:"is_valid"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}

// ScoreImageAuthenticity derives the heuristic metadata for an image from
// its file facts. Pure function of the inputs and now.
func ScoreImageAuthenticity(info RawImageInfo, now time.Time) models.ImageMetadata {
	meta := models.ImageMetadata{
		FileName:     info.FileName,
		FileSize:     info.FileSize,
		FileType:     info.MimeType,
		LastModified: info.LastModified,
		Width:        info.Width,
		Height:       info.Height,
		Orientation:  orientationOf(info.Width, info.Height),
	}

	lower := strings.ToLower(info.FileName)
	meta.OriginatingApp = originatingApp(lower)
	meta.DeviceMake, meta.DeviceModel = deviceGuess(lower)

	age := now.Sub(info.LastModified)
	meta.IsRecent = age >= 0 && age <= recencyWindow

	score := 0
	switch {
	case age >= 0 && age <= 30*time.Minute:
		score += 40
	case age >= 0 && age <= time.Hour:
		score += 30
	case age >= 0 && age <= 2*time.Hour:
		score += 20
	case age >= 0 && age <= 6*time.Hour:
		score += 10
	}

	switch {
	case info.FileSize >= 500*kb && info.FileSize <= 8*mb:
		score += 20
	case info.FileSize >= 100*kb && info.FileSize <= 15*mb:
		score += 15
	default:
		score += 5
	}

	switch {
	case matchesKnownResolution(info.Width, info.Height):
		score += 25
	case info.Width > 1000 && info.Height > 1000:
		score += 15
	default:
		score += 5
	}

	if hasCameraFilename(lower) {
		score += 15
	}

	meta.ValidationScore = clampScore(score)
	meta.IsFromCamera = fromCamera(lower, info)

	return meta
}

// ValidateForContest gates an image entry on the derived metadata. The
// verdict requires every check to pass and the accumulated points to reach
// 70; otherwise it collects every human-readable reason.
func ValidateForContest(meta models.ImageMetadata) ContestValidation {
	verdict := ContestValidation{}
	points := 0

	if meta.IsRecent {
		points += 40
	} else {
		verdict.Reasons = append(verdict.Reasons, "image is not recent")
	}

	if meta.IsFromCamera {
		points += 30
	} else {
		verdict.Reasons = append(verdict.Reasons, "image does not appear to be a camera capture")
	}

	if meta.ValidationScore >= 50 {
		points += 30
	} else {
		verdict.Reasons = append(verdict.Reasons, fmt.Sprintf("authenticity score too low: %d", meta.ValidationScore))
	}

	if meta.FileSize >= 100*kb && meta.FileSize <= 20*mb {
		points += 10
	} else {
		verdict.Reasons = append(verdict.Reasons, "file size outside the accepted range")
	}

	if meta.Width >= 500 && meta.Width <= 6000 && meta.Height >= 500 && meta.Height <= 6000 {
		points += 10
	} else {
		verdict.Reasons = append(verdict.Reasons, "image dimensions outside the accepted range")
	}

	verdict.Score = points
	verdict.IsValid = len(verdict.Reasons) == 0 && points >= 70
	return verdict
}

// fromCamera is the weighted-threshold heuristic, independent of the
// additive authenticity score: camera filename 30, app token 25, plausible
// size 20, known resolution 25; true at 50 or more.
func fromCamera(lowerName string, info RawImageInfo) bool {
	weight := 0

	if hasCameraFilename(lowerName) {
		weight += 30
	}

	if originatingApp(lowerName) != "" {
		weight += 25
	}

	if info.FileSize >= 100*kb && info.FileSize <= 10*mb {
		weight += 20
	}

	if matchesKnownResolution(info.Width, info.Height) {
		weight += 25
	}

	return weight >= 50
}

func hasCameraFilename(lowerName string) bool {
	for _, pattern := range cameraFilenamePatterns {
		if strings.Contains(lowerName, pattern) {
			return true
		}
	}
	return false
}

func originatingApp(lowerName string) string {
	for _, entry := range appFilenameTokens {
		if strings.Contains(lowerName, entry.token) {
			return entry.app
		}
	}
	return ""
}

func deviceGuess(lowerName string) (string, string) {
	for token, vendor := range deviceFilenameTokens {
		if strings.HasPrefix(lowerName, token) {
			return vendor, ""
		}
	}
	return "", ""
}

func matchesKnownResolution(width, height int) bool {
	for _, res := range knownMobileResolutions {
		if (width == res[0] && height == res[1]) || (width == res[1] && height == res[0]) {
			return true
		}
	}
	return false
}

func orientationOf(width, height int) string {
	switch {
	case width == 0 || height == 0:
		return ""
	case width > height:
		return "landscape"
	case height > width:
		return "portrait"
	default:
		return "square"
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
