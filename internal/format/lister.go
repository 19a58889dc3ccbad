package format

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/ytget/yt-downloader-web/internal/extract"
	"github.com/ytget/yt-downloader-web/internal/model"
)

// Lister queries the extraction engine for the formats of a video and
// returns video-carrying candidates ranked by resolution.
type Lister struct {
	engine extract.Engine
}

// NewLister creates a format lister backed by the given engine.
func NewLister(engine extract.Engine) *Lister {
	return &Lister{engine: engine}
}

// List resolves metadata for the URL and returns the filtered, ranked
// format listing. Engine failures are returned as an error value for the
// handler to surface; nothing is raised past this point.
func (l *Lister) List(ctx context.Context, url string) (*model.FormatListing, error) {
	info, err := l.engine.Probe(ctx, url)
	if err != nil {
		log.WithError(err).Warnf("Format probe failed for %s", url)
		return nil, err
	}

	formats := filterVideoFormats(info.Formats)
	sortByHeightDesc(formats)

	return &model.FormatListing{
		ID:      info.ID,
		Title:   info.Title,
		Formats: formats,
	}, nil
}

// filterVideoFormats keeps only candidates that carry a video stream:
// a present video codec and a resolution that is not "audio only".
func filterVideoFormats(in []model.FormatDescriptor) []model.FormatDescriptor {
	out := make([]model.FormatDescriptor, 0, len(in))
	for _, f := range in {
		if f.VCodec == "" || f.VCodec == model.VCodecNone {
			continue
		}
		if f.Resolution == model.ResolutionAudioOnly {
			continue
		}
		out = append(out, f)
	}
	return out
}

// sortByHeightDesc orders formats by vertical resolution, highest first.
// Unknown resolutions rank last; the sort is stable otherwise.
func sortByHeightDesc(formats []model.FormatDescriptor) {
	sort.SliceStable(formats, func(i, j int) bool {
		return formats[i].Height() > formats[j].Height()
	})
}
