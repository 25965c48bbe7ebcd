package uploader

import (
	"fmt"
	"strings"
	"time"

	"newsreel/internal/subtitle"
)

var defaultTags = []string{"单机游戏", "游戏新闻", "游戏日报"}

// DailyUploadRequest builds the upload metadata for a finished batch.
// The description carries a chapter list derived from the timeline so
// viewers can jump between stories.
func DailyUploadRequest(videoPath, date string, tl *subtitle.Timeline, privacy string) (UploadRequest, error) {
	day, err := time.Parse("20060102", date)
	if err != nil {
		return UploadRequest{}, fmt.Errorf("bad batch date %q: %w", date, err)
	}

	var desc strings.Builder
	desc.WriteString("今日单机游戏新闻速览。\n")
	if tl != nil && len(tl.Entries) > 0 {
		desc.WriteString("\n本期内容：\n")
		for _, entry := range tl.Entries {
			startMs, err := subtitle.ParseTime(entry.Start)
			if err != nil {
				return UploadRequest{}, fmt.Errorf("entry %q: %w", entry.Title, err)
			}
			desc.WriteString(fmt.Sprintf("%s %s\n", chapterStamp(startMs), entry.Title))
		}
	}

	if privacy == "" {
		privacy = "unlisted"
	}

	return UploadRequest{
		FilePath:    videoPath,
		Title:       fmt.Sprintf("单机游戏日报 %s", day.Format("2006年01月02日")),
		Description: desc.String(),
		Tags:        defaultTags,
		Privacy:     privacy,
	}, nil
}

// chapterStamp renders M:SS or H:MM:SS, the form YouTube chapter lists
// expect.
func chapterStamp(ms int64) string {
	totalSec := ms / 1000
	h := totalSec / 3600
	m := totalSec % 3600 / 60
	s := totalSec % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
