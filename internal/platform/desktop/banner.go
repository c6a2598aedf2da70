package desktop

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// banner is an outcome notice that fades out over its lifetime.
type banner struct {
	text  string
	tween *gween.Tween
	alpha float32
}

// show starts a new notice, replacing any notice still fading.
func (b *banner) show(text string, d time.Duration) {
	b.text = text
	b.alpha = 1
	b.tween = gween.New(1, 0, float32(d.Seconds()), ease.InQuad)
}

// update advances the fade by dt seconds.
func (b *banner) update(dt float32) {
	if b.tween == nil {
		return
	}
	v, finished := b.tween.Update(dt)
	b.alpha = v
	if finished {
		b.clear()
	}
}

func (b *banner) clear() {
	b.text = ""
	b.tween = nil
	b.alpha = 0
}

func (b *banner) visible() bool {
	return b.text != "" && b.alpha > 0
}
