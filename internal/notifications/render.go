package notifications

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"
)

// ShippedLineItem is one row of the shipping email summary.
type ShippedLineItem struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// OrderShipped carries the data the shipping notification renders.
type OrderShipped struct {
	To          string
	OrderID     string
	Items       []ShippedLineItem
	FinalAmount decimal.Decimal
}

// OrderCompleted carries the data the completion notification renders.
type OrderCompleted struct {
	To      string
	OrderID string
	Points  int
}

// FormatMoney renders an amount with comma thousand separators and the
// storefront currency suffix, e.g. "1,290,000 đ".
func FormatMoney(amount decimal.Decimal) string {
	s := amount.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	return out + " đ"
}

// RenderOrderShipped builds the handed-to-carrier email with the line item
// table and the total bill.
func RenderOrderShipped(n OrderShipped) Email {
	var rows strings.Builder
	for _, item := range n.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&rows, `<tr>
  <td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td>
  <td style="padding: 8px; border-bottom: 1px solid #ddd; text-align: center;">%d</td>
  <td style="padding: 8px; border-bottom: 1px solid #ddd; text-align: right;">%s</td>
  <td style="padding: 8px; border-bottom: 1px solid #ddd; text-align: right;">%s</td>
</tr>`,
			html.EscapeString(item.Name),
			item.Quantity,
			FormatMoney(item.UnitPrice),
			FormatMoney(lineTotal),
		)
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
    <h2 style="color: #2563EB;">Đơn hàng đang trên đường đến bạn!</h2>
    <p>Xin chào,</p>
    <p>Đơn hàng <b>#%s</b> của bạn đã được đóng gói và bàn giao cho đơn vị vận chuyển.</p>
    <h3>Chi tiết đơn hàng:</h3>
    <table style="width: 100%%; border-collapse: collapse; margin-top: 20px;">
      <thead>
        <tr>
          <th style="padding: 12px; text-align: left;">Sản phẩm</th>
          <th style="padding: 12px; text-align: center;">SL</th>
          <th style="padding: 12px; text-align: right;">Đơn giá</th>
          <th style="padding: 12px; text-align: right;">Thành tiền</th>
        </tr>
      </thead>
      <tbody>
        %s
      </tbody>
    </table>
    <div style="text-align: right; font-size: 18px; font-weight: bold; color: #d9534f; margin-top: 20px;">
      Tổng thanh toán: %s
    </div>
    <p>Vui lòng chú ý điện thoại để nhận hàng nhé!</p>
    <div style="margin-top: 30px; font-size: 12px; color: #777; text-align: center;">
      Trân trọng,<br><b>TechStore Team</b>
    </div>
  </div>
</body>
</html>`, html.EscapeString(n.OrderID), rows.String(), FormatMoney(n.FinalAmount))

	return Email{
		To:      n.To,
		Subject: fmt.Sprintf("📦 Đơn hàng #%s đang được vận chuyển!", n.OrderID),
		HTML:    body,
	}
}

// RenderOrderCompleted builds the thank-you email with the credited points.
func RenderOrderCompleted(n OrderCompleted) Email {
	body := fmt.Sprintf(`<div style="font-family: Arial; padding: 20px; border: 1px solid #eee; border-radius: 8px;">
  <h2 style="color: #16a34a;">Giao hàng thành công!</h2>
  <p>Xin chào,</p>
  <p>Cảm ơn bạn đã xác nhận nhận hàng thành công đơn <b>#%s</b>.</p>
  <p style="background-color: #ecfdf5; color: #065f46; padding: 15px; border-radius: 5px; text-align: center; font-weight: bold;">
    🎉 Bạn đã được cộng +%d điểm thưởng vào ví.
  </p>
  <p>Hy vọng bạn hài lòng với sản phẩm. Đừng quên để lại đánh giá nhé!</p>
  <br>
  <p>TechStore Team</p>
</div>`, html.EscapeString(n.OrderID), n.Points)

	return Email{
		To:      n.To,
		Subject: fmt.Sprintf("✅ Cảm ơn bạn đã mua sắm (Đơn #%s)", n.OrderID),
		HTML:    body,
	}
}
