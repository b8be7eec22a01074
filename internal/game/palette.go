package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

var Palette = struct {
	Grass      RGB
	Asphalt    RGB
	LaneMark   RGB
	StopLine   RGB
	SignalBox  RGB
	LampRed    RGB
	LampYellow RGB
	LampGreen  RGB
	LampOff    RGB
	Override   RGB
	HUDText    RGB
	HUDDim     RGB
	Good       RGB
	Warn       RGB
	Bad        RGB
	Spark      RGB
	Smoke      RGB
}{
	Grass:      RGB{R: 46, G: 125, B: 50},
	Asphalt:    RGB{R: 55, G: 58, B: 64},
	LaneMark:   RGB{R: 215, G: 200, B: 80},
	StopLine:   RGB{R: 235, G: 235, B: 235},
	SignalBox:  RGB{R: 30, G: 30, B: 34},
	LampRed:    RGB{R: 230, G: 55, B: 45},
	LampYellow: RGB{R: 245, G: 200, B: 50},
	LampGreen:  RGB{R: 70, G: 210, B: 90},
	LampOff:    RGB{R: 60, G: 60, B: 60},
	Override:   RGB{R: 80, G: 140, B: 255},
	HUDText:    RGB{R: 240, G: 240, B: 240},
	HUDDim:     RGB{R: 160, G: 160, B: 160},
	Good:       RGB{R: 100, G: 255, B: 100},
	Warn:       RGB{R: 255, G: 255, B: 100},
	Bad:        RGB{R: 255, G: 80, B: 80},
	Spark:      RGB{R: 255, G: 180, B: 70},
	Smoke:      RGB{R: 120, G: 120, B: 125},
}

// vehiclePalette maps a vehicle to its body colour. Standard cars pull from
// a small pool keyed off the vehicle's ID so the mix stays stable per car.
var standardBodies = []RGB{
	{R: 70, G: 130, B: 200},
	{R: 200, G: 200, B: 205},
	{R: 120, G: 120, B: 130},
	{R: 150, G: 80, B: 160},
	{R: 40, G: 90, B: 60},
}

func vehicleColor(v *Vehicle) RGB {
	switch v.Class {
	case ClassFast:
		return RGB{R: 235, G: 130, B: 40}
	case ClassBus:
		return RGB{R: 90, G: 170, B: 220}
	case ClassTruck:
		return RGB{R: 140, G: 100, B: 60}
	case ClassEmergency:
		return RGB{R: 220, G: 40, B: 40}
	default:
		return standardBodies[int(v.ID[0])%len(standardBodies)]
	}
}

// severityColor maps a notification severity to its HUD colour.
func severityColor(sev Severity) RGB {
	switch sev {
	case SeverityPositive:
		return Palette.Good
	case SeverityHigh:
		return Palette.Bad
	case SeverityMedium:
		return RGB{R: 255, G: 170, B: 60}
	case SeverityLow:
		return Palette.Warn
	default:
		return RGB{R: 230, G: 230, B: 230}
	}
}
