package ppu

const (
	ScreenWidth  = 256
	ScreenHeight = 240

	tileWidth  = 8
	tileHeight = 8
	spriteSize = 4 // bytes per OAM entry
	numSprites = oamSize / spriteSize

	backgroundPaletteStart = 0x3F00
	spritePaletteStart     = 0x3F10
)

// Screen is a 256x240 matrix of palette indices, row-major by y then x.
// The renderer collaborator translates each entry through a fixed
// NES-color-to-RGB table.
type Screen [ScreenHeight][ScreenWidth]uint8

// SpritePriority decodes OAM attribute bit 5.
type SpritePriority int

const (
	PriorityAboveBackground SpritePriority = iota
	PriorityBeneathBackground
)

// sprite is one decoded 4-byte OAM entry.
type sprite struct {
	y          uint8
	tileIndex  uint8
	attributes uint8
	x          uint8
}

func (s sprite) priority() SpritePriority {
	if s.attributes&0x20 != 0 {
		return PriorityBeneathBackground
	}
	return PriorityAboveBackground
}

func (s sprite) flipVertically() bool   { return s.attributes&0x80 != 0 }
func (s sprite) flipHorizontally() bool { return s.attributes&0x40 != 0 }
func (s sprite) paletteIndex() uint8    { return s.attributes & 0x03 }

func (p *PPU) readSprites() [numSprites]sprite {
	var sprites [numSprites]sprite
	for i := range sprites {
		base := i * spriteSize
		sprites[i] = sprite{
			y:          p.oam[base],
			tileIndex:  p.oam[base+1],
			attributes: p.oam[base+2],
			x:          p.oam[base+3],
		}
	}
	return sprites
}

// tilePlane returns the two 8-byte bitplanes of one 8x8 tile at the given
// pattern-table address.
func (p *PPU) tilePlane(tileAddr uint16) (low, high [8]uint8, err error) {
	for row := 0; row < 8; row++ {
		b, err := p.vram.ReadByte(tileAddr + uint16(row))
		if err != nil {
			return low, high, err
		}
		low[row] = b
	}
	for row := 0; row < 8; row++ {
		b, err := p.vram.ReadByte(tileAddr + 8 + uint16(row))
		if err != nil {
			return low, high, err
		}
		high[row] = b
	}
	return low, high, nil
}

func colorIndexAt(low, high [8]uint8, row, col int) uint8 {
	shift := uint(7 - col)
	bit0 := (low[row] >> shift) & 1
	bit1 := (high[row] >> shift) & 1
	return bit0 | bit1<<1
}

// Frame builds a complete 256x240 screen from the current name tables,
// attribute tables, pattern tables, OAM, and palettes. It does not mutate
// scrolling or latch state; it is a pure read of the current VRAM/OAM
// snapshot, callable whenever the host decides a frame is ready (typically
// at vblank).
func (p *PPU) Frame() (*Screen, error) {
	var screen Screen
	var backgroundOpaque [ScreenHeight][ScreenWidth]bool

	if p.ShowBackground() {
		if err := p.paintBackground(&screen, &backgroundOpaque); err != nil {
			return nil, err
		}
	}
	if p.ShowSprites() {
		if err := p.paintSprites(&screen, &backgroundOpaque); err != nil {
			return nil, err
		}
	}
	return &screen, nil
}

func (p *PPU) paintBackground(screen *Screen, opaque *[ScreenHeight][ScreenWidth]bool) error {
	nameTableBase := p.BaseNameTableAddress()
	patternBase := p.BackgroundPatternTableAddress()

	for tileRow := 0; tileRow < ScreenHeight/tileHeight; tileRow++ {
		for tileCol := 0; tileCol < ScreenWidth/tileWidth; tileCol++ {
			entryIndex := uint16(tileRow*32 + tileCol)
			tileIndex, err := p.vram.ReadByte(nameTableBase + entryIndex)
			if err != nil {
				return err
			}

			attrIndex := uint16(0x3C0 + (tileRow/4)*8 + tileCol/4)
			attr, err := p.vram.ReadByte(nameTableBase + attrIndex)
			if err != nil {
				return err
			}
			shift := uint(((tileRow%4)/2)*4 + ((tileCol%4)/2)*2)
			paletteHigh := (attr >> shift) & 0x03

			tileAddr := patternBase + uint16(tileIndex)*16
			low, high, err := p.tilePlane(tileAddr)
			if err != nil {
				return err
			}

			for row := 0; row < tileHeight; row++ {
				y := tileRow*tileHeight + row
				for col := 0; col < tileWidth; col++ {
					x := tileCol*tileWidth + col
					colorIndex := colorIndexAt(low, high, row, col)
					paletteAddr := uint16(backgroundPaletteStart) + uint16(paletteHigh)<<2 + uint16(colorIndex)
					color, err := p.vram.ReadByte(paletteAddr)
					if err != nil {
						return err
					}
					screen[y][x] = color
					opaque[y][x] = colorIndex != 0
				}
			}
		}
	}
	return nil
}

func (p *PPU) paintSprites(screen *Screen, backgroundOpaque *[ScreenHeight][ScreenWidth]bool) error {
	height := p.SpriteHeight()
	sprites := p.readSprites()

	// Paint in reverse OAM order so sprite 0 is painted last and wins
	// overlaps, matching the hardware's "lowest index wins" priority
	// without needing a per-scanline sprite-evaluation limit.
	for i := numSprites - 1; i >= 0; i-- {
		s := sprites[i]

		var patternBase uint16
		var effectiveTile uint8
		eightByEight := height == 8
		if eightByEight {
			patternBase = p.SpritePatternTableAddress()
			effectiveTile = s.tileIndex
		} else {
			if s.tileIndex&0x01 != 0 {
				patternBase = 0x1000
			} else {
				patternBase = 0x0000
			}
			effectiveTile = s.tileIndex &^ 0x01
		}

		for row := 0; row < height; row++ {
			sampleRow := row
			if s.flipVertically() {
				sampleRow = height - 1 - row
			}
			tile := effectiveTile
			planeRow := sampleRow
			if !eightByEight && sampleRow >= 8 {
				tile++
				planeRow = sampleRow - 8
			}
			tileAddr := patternBase + uint16(tile)*16
			low, high, err := p.tilePlane(tileAddr)
			if err != nil {
				return err
			}

			screenY := int(s.y) + 1 + row
			if screenY < 0 || screenY >= ScreenHeight {
				continue
			}

			for col := 0; col < tileWidth; col++ {
				sampleCol := col
				if s.flipHorizontally() {
					sampleCol = tileWidth - 1 - col
				}
				colorIndex := colorIndexAt(low, high, planeRow, sampleCol)
				if colorIndex == 0 {
					continue // transparent sprite pixel
				}
				screenX := int(s.x) + col
				if screenX < 0 || screenX >= ScreenWidth {
					continue
				}
				if s.priority() == PriorityBeneathBackground && backgroundOpaque[screenY][screenX] {
					continue
				}
				paletteAddr := uint16(spritePaletteStart) + uint16(s.paletteIndex())<<2 + uint16(colorIndex)
				color, err := p.vram.ReadByte(paletteAddr)
				if err != nil {
					return err
				}
				screen[screenY][screenX] = color
			}
		}
	}
	return nil
}
