package handler

import (
	"github.com/lateshow/lateshow-api/internal/core/domain"
)

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func toGuestResponses(guests []domain.Guest) []guestResponse {
	out := make([]guestResponse, 0, len(guests))
	for _, g := range guests {
		out = append(out, guestResponse{ID: g.ID, Name: g.Name, Occupation: g.Occupation})
	}
	return out
}

func toEpisodeResponse(e domain.Episode) episodeResponse {
	return episodeResponse{ID: e.ID, Date: e.Date.Format(domain.DateLayout), Number: e.Number}
}

func toEpisodeResponses(episodes []domain.Episode) []episodeResponse {
	out := make([]episodeResponse, 0, len(episodes))
	for _, e := range episodes {
		out = append(out, toEpisodeResponse(e))
	}
	return out
}

func toEpisodeDetailResponse(d *domain.EpisodeDetail) episodeDetailResponse {
	appearances := make([]appearanceResponse, 0, len(d.Appearances))
	for _, a := range d.Appearances {
		appearances = append(appearances, toAppearanceResponse(a))
	}
	return episodeDetailResponse{
		episodeResponse: toEpisodeResponse(d.Episode),
		Appearances:     appearances,
	}
}

func toAppearanceResponse(a domain.Appearance) appearanceResponse {
	return appearanceResponse{ID: a.ID, Rating: a.Rating, GuestID: a.GuestID, EpisodeID: a.EpisodeID}
}
