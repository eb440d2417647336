package forecast

import "math"

var compassPoints = [8]string{
	"Nord", "Nord-Est", "Est", "Sud-Est", "Sud", "Sud-Ouest", "Ouest", "Nord-Ouest",
}

// Direction names the 8-point compass sector for a bearing in degrees.
func Direction(degrees float64) string {
	idx := int(math.Round(degrees/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}
