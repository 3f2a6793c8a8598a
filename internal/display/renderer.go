package display

import (
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/eng2007/zxgo/internal/machine"
)

// screen pixel dimensions: 256x192 paper area plus the 32-pixel border on
// every side, matching a real Spectrum's visible frame.
const (
	PaperWidth  = 256
	PaperHeight = 192
	BorderSize  = 32
	ScreenWidth  = PaperWidth + 2*BorderSize
	ScreenHeight = PaperHeight + 2*BorderSize
)

// Renderer owns an SDL window/renderer/texture triple and draws a
// Machine's screen memory into it once per frame, structured the way
// newhook-6502/c64/c64/c64.go owns and drives its own SDL resources.
type Renderer struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
	scale    int32
}

// NewRenderer opens a window sized to the Spectrum screen at the given
// integer scale factor.
func NewRenderer(scale int32) (*Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow("ZX Spectrum",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		ScreenWidth*scale, ScreenHeight*scale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	texture, err := renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING,
		ScreenWidth, ScreenHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}

	return &Renderer{
		window:   window,
		renderer: renderer,
		texture:  texture,
		pixels:   make([]byte, ScreenWidth*ScreenHeight*4),
		scale:    scale,
	}, nil
}

// PollQuit drains pending SDL events and reports whether the window was
// asked to close.
func (r *Renderer) PollQuit() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			return true
		}
	}
	return false
}

// DrawFrame decodes a Machine's screen memory (6144 pixel bytes followed
// by 768 attribute bytes) into the texture and presents it, honoring the
// flash attribute using the machine's own frame counter.
func (r *Renderer) DrawFrame(m *machine.Machine) error {
	screen := m.Memory.ScreenBytes()
	flashOn := FlashPhase(m.FrameCounter())

	borderAttr := m.Router.BorderColor() & 0x07
	borderColor := Palette[borderAttr]
	for i := 0; i < len(r.pixels); i += 4 {
		writePixel(r.pixels, i, borderColor)
	}

	for row := 0; row < PaperHeight; row++ {
		for col := 0; col < PaperWidth/8; col++ {
			pixelByte := screen[pixelAddr(row, col)]
			attr := screen[6144+((row/8)*32)+col]
			ink, paper, _, flash := Decode(attr)
			if flash && flashOn {
				ink, paper = paper, ink
			}
			for bit := 0; bit < 8; bit++ {
				x := BorderSize + col*8 + bit
				y := BorderSize + row
				color := paper
				if pixelByte&(0x80>>uint(bit)) != 0 {
					color = ink
				}
				writePixel(r.pixels, (y*ScreenWidth+x)*4, color)
			}
		}
	}

	if err := r.texture.Update(nil, unsafe.Pointer(&r.pixels[0]), ScreenWidth*4); err != nil {
		return err
	}
	if err := r.renderer.Clear(); err != nil {
		return err
	}
	if err := r.renderer.Copy(r.texture, nil, nil); err != nil {
		return err
	}
	r.renderer.Present()
	return nil
}

// pixelAddr computes the Spectrum's famously non-linear screen byte
// address for pixel row/column-of-bytes, per the standard third-row-bits
// interleave.
func pixelAddr(row, colByte int) int {
	third := row / 64
	within := row % 64
	charRow := within / 8
	scan := within % 8
	return third*2048 + charRow*32 + scan*256 + colByte
}

func writePixel(pixels []byte, offset int, c RGBA) {
	pixels[offset+0] = byte(c >> 24)
	pixels[offset+1] = byte(c >> 16)
	pixels[offset+2] = byte(c >> 8)
	pixels[offset+3] = byte(c)
}

// Close releases the SDL resources.
func (r *Renderer) Close() {
	if r.texture != nil {
		r.texture.Destroy()
	}
	if r.renderer != nil {
		r.renderer.Destroy()
	}
	if r.window != nil {
		r.window.Destroy()
	}
	sdl.Quit()
}
