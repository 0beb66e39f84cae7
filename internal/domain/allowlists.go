package domain

import "strings"

// Genres accepted on track create and update. Anything outside this list is a
// validation failure.
var genres = map[string]struct{}{}

// Moods accepted on track metadata. Unlike genres, an unknown mood is dropped
// rather than rejected.
var moods = map[string]struct{}{}

// Handles that can never be claimed: route collisions, impersonation risks,
// plus every genre and mood word (populated in init).
var reservedHandles = map[string]struct{}{}

var genreList = []string{
	"All Genres",
	"Electronic",
	"Rock",
	"Metal",
	"Alternative",
	"Hip-Hop/Rap",
	"Experimental",
	"Punk",
	"Folk",
	"Pop",
	"Ambient",
	"Soundtrack",
	"World",
	"Jazz",
	"Acoustic",
	"Funk",
	"R&B/Soul",
	"Devotional",
	"Classical",
	"Reggae",
	"Podcasts",
	"Country",
	"Spoken Word",
	"Comedy",
	"Blues",
	"Kids",
	"Audiobooks",
	"Latin",
	"Lo-Fi",
	"Hyperpop",
	"Dancehall",
	"Techno",
	"Trap",
	"House",
	"Tech House",
	"Deep House",
	"Disco",
	"Electro",
	"Jungle",
	"Progressive House",
	"Hardstyle",
	"Glitch Hop",
	"Trance",
	"Future Bass",
	"Future House",
	"Tropical House",
	"Downtempo",
	"Drum & Bass",
	"Dubstep",
	"Jersey Club",
	"Vaporwave",
	"Moombahton",
}

var moodList = []string{
	"Peaceful",
	"Romantic",
	"Sentimental",
	"Tender",
	"Easygoing",
	"Yearning",
	"Sophisticated",
	"Sensual",
	"Cool",
	"Gritty",
	"Melancholy",
	"Serious",
	"Brooding",
	"Fiery",
	"Defiant",
	"Aggressive",
	"Rowdy",
	"Excited",
	"Energizing",
	"Empowering",
	"Stirring",
	"Upbeat",
	"Other",
}

var reservedHandleList = []string{
	"audius",
	"discovery",
	"content",
	"identity",
	"audio",
	"admin",
	"staff",
	"support",
	"help",
	"official",
	"trending",
	"feed",
	"explore",
	"upload",
	"signin",
	"signup",
	"settings",
	"notifications",
	"search",
	"api",
	"download",
	"wallet",
	"rewards",
}

func init() {
	for _, g := range genreList {
		genres[g] = struct{}{}
		reservedHandles[strings.ToLower(g)] = struct{}{}
	}
	for _, m := range moodList {
		moods[m] = struct{}{}
		reservedHandles[strings.ToLower(m)] = struct{}{}
	}
	for _, h := range reservedHandleList {
		reservedHandles[h] = struct{}{}
	}
}

// ValidGenre reports whether genre is in the accepted set.
func ValidGenre(genre string) bool {
	_, ok := genres[genre]
	return ok
}

// ValidMood reports whether mood is in the accepted set.
func ValidMood(mood string) bool {
	_, ok := moods[mood]
	return ok
}

// ReservedHandle reports whether handle collides with a reserved route, staff
// name, genre or mood word. Comparison is case-insensitive.
func ReservedHandle(handle string) bool {
	_, ok := reservedHandles[strings.ToLower(handle)]
	return ok
}

// ValidHandle checks handle length and character set. Handles are lowercase
// alphanumerics, underscores and dots.
func ValidHandle(handle string) bool {
	if handle == "" || len(handle) > HandleCharLimit {
		return false
	}
	for _, r := range handle {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
