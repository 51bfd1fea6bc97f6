package monopet

// Color is a single 1-bit pixel value.
type Color uint8

const (
	Off Color = 0 // unlit pixel (black on an OLED panel)
	On  Color = 1 // lit pixel
)

// Inverse returns the other color.
func (c Color) Inverse() Color {
	if c == Off {
		return On
	}
	return Off
}

// Key selects the pixel value skipped during a blit.
type Key int8

const (
	KeyNone Key = -1 // opaque copy, every pixel is written
	KeyOff  Key = 0  // unlit source pixels are transparent
	KeyOn   Key = 1  // lit source pixels are transparent
)

// KeyFor returns the transparency key that skips pixels of color c.
func KeyFor(c Color) Key {
	return Key(c)
}

// Point is an integer pixel position.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Rect is an axis-aligned pixel rectangle. The coordinate system has its
// origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Intersects reports whether r and other share at least one pixel.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Default panel size of the SSD1306 module the sprites are authored for.
const (
	DisplayWidth  = 128
	DisplayHeight = 64
)
