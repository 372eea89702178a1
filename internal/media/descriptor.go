// Package media selects the avatar asset (image or video) for an outfit
// category and gender, with a one-level fallback chain and a session-scoped
// resolution cache.
package media

import (
	"fmt"

	"github.com/weatherfit/weather-outfit-service/internal/outfit"
)

// Kind is the asset type of a descriptor.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Gender selects the avatar variant.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// slot is one of the three physical asset buckets categories reduce to.
type slot string

const (
	slotSunny slot = "sunny"
	slotRainy slot = "rainy"
	slotCool  slot = "cool"
)

// Descriptor identifies a displayable asset. Fallback, when present, is
// always an image and never carries its own fallback; the chain depth is
// capped at one so a load failure can never loop.
type Descriptor struct {
	Kind     Kind        `json:"kind"`
	URL      string      `json:"url"`
	Fallback *Descriptor `json:"fallback,omitempty"`
}

// slotFor reduces an outfit category to its asset bucket. Unknown
// categories default to the sunny bucket rather than erroring.
func slotFor(category outfit.Category) slot {
	switch category {
	case outfit.SunnyShortsShortSleeve:
		return slotSunny
	case outfit.SunnyShortsLongSleeve:
		return slotCool
	case outfit.RainyLongPantsLongSleeve, outfit.RainyShortsLongSleeveBoots:
		return slotRainy
	default:
		return slotSunny
	}
}

// assetTable builds the per-gender, per-slot descriptors under the given
// base URL. The male rainy slot is the one video asset, with an image
// fallback; everything else is image-only.
func assetTable(baseURL string) map[Gender]map[slot]Descriptor {
	img := func(name string) Descriptor {
		return Descriptor{Kind: KindImage, URL: fmt.Sprintf("%s/images/%s", baseURL, name)}
	}

	return map[Gender]map[slot]Descriptor{
		GenderMale: {
			slotSunny: img("sunny.png"),
			slotRainy: {
				Kind:     KindVideo,
				URL:      fmt.Sprintf("%s/videos/rainy.mp4", baseURL),
				Fallback: &Descriptor{Kind: KindImage, URL: fmt.Sprintf("%s/images/rainy.png", baseURL)},
			},
			slotCool: img("cool.png"),
		},
		GenderFemale: {
			slotSunny: img("sunny2.png"),
			slotRainy: img("rainy2.png"),
			slotCool:  img("cool2.png"),
		},
	}
}
