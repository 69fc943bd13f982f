package harvest

import (
	"context"

	"capcorpus/internal/config"
	"capcorpus/internal/corpus"
	"capcorpus/internal/services/youtube"
	"capcorpus/internal/store"
	"capcorpus/internal/textutil"
)

type channelFile struct {
	Query string `json:"query"`
	youtube.Channel
}

func (h *Harvester) exportChannel(query string, channel youtube.Channel) error {
	return corpus.WriteJSON(h.cfg.StagePath(config.StageChannels, textutil.FileStem(query)), channelFile{Query: query, Channel: channel})
}

func (h *Harvester) exportPlaylists(ctx context.Context, channelID, stem string) error {
	stored, err := h.store.Playlists(ctx, channelID)
	if err != nil {
		return err
	}
	out := make([]youtube.Playlist, 0, len(stored))
	for _, p := range stored {
		out = append(out, youtube.Playlist{ID: p.ID, Title: p.Title})
	}
	return corpus.WriteJSON(h.cfg.StagePath(config.StagePlaylists, stem), out)
}

func (h *Harvester) exportVideos(ctx context.Context, channelID, stem string) error {
	stored, err := h.store.Videos(ctx, channelID)
	if err != nil {
		return err
	}
	out := make([]youtube.Video, 0, len(stored))
	for _, v := range stored {
		out = append(out, youtube.Video{ID: v.ID, Title: v.Title, PlaylistID: v.PlaylistID})
	}
	return corpus.WriteJSON(h.cfg.StagePath(config.StageVideos, stem), out)
}

func (h *Harvester) exportTranscripts(ctx context.Context, channelID, stem string) error {
	fetched, err := h.store.FetchedTranscripts(ctx, channelID, h.cfg.YouTube.Language)
	if err != nil {
		return err
	}
	return corpus.WriteRecords(h.cfg.StagePath(config.StageRawTranscripts, stem), rawRecords(fetched), h.cfg.Labeling.VideoIDAsIndex)
}

func rawRecords(fetched []store.FetchedTranscript) []corpus.RawRecord {
	out := make([]corpus.RawRecord, 0, len(fetched))
	for _, ft := range fetched {
		out = append(out, corpus.RawRecord{
			VideoID:    ft.ID,
			VideoTitle: ft.Title,
			PlaylistID: ft.PlaylistID,
			ChannelID:  ft.ChannelID,
			Autogen:    ft.Autogen,
			Manual:     ft.Manual,
		})
	}
	return out
}
