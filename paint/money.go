package paint

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFace is the face used for floating money labels.
var MoneyFace font.Face = basicfont.Face7x13

// FormatMoney renders cents in the currency of the tag's region, with that
// locale's symbol and separators. The symbol always leads. Tags without a
// region fall back to US dollars.
func FormatMoney(tag language.Tag, cents int64) string {
	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		unit = currency.USD
	}
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	p := message.NewPrinter(tag)
	return sign + p.Sprint(currency.Symbol(unit)) + p.Sprint(number.Decimal(float64(cents)/100, number.Scale(2)))
}

// DrawMoney draws each label centred on its position. Labels are clipped to
// the target, so a label spanning several columns is completed by each of
// them in turn.
func DrawMoney(t *Target, head *MoneyString, tag language.Tag) {
	for m := head; m != nil; m = m.Next {
		text := FormatMoney(tag, m.Amount)
		width := font.MeasureString(MoneyFace, text).Ceil()
		x := int(t.Zoom.ApplyInversed(m.Pos.X-t.X)) - width/2
		y := int(t.Zoom.ApplyInversed(m.Pos.Y - t.Y))

		d := font.Drawer{
			Dst:  t,
			Src:  image.NewUniform(t.palette()[m.Colour.Mid()]),
			Face: MoneyFace,
			Dot:  fixed.P(x, y),
		}
		d.DrawString(text)
	}
}

