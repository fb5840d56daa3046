package orders

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"

	"naturesbasket/db"
	"naturesbasket/globals"
	"naturesbasket/models"
	"naturesbasket/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// ReceiptPayload returns the signed QR payload for an order:
// orderNumber|orderID|signature.
func ReceiptPayload(orderNumber, orderID string) string {
	data := fmt.Sprintf("%s|%s", orderNumber, orderID)
	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// DownloadReceipt renders the order as a PDF with a signed QR code.
func DownloadReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	var order models.Order
	if err := db.OrdersCollection.FindOne(r.Context(), bson.M{"orderid": ps.ByName("id")}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if !canViewOrder(&order, userID, role) {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Not your order", "FORBIDDEN")
		return
	}

	qrPNG, err := qrcode.Encode(ReceiptPayload(order.OrderNumber, order.OrderID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Nature's Basket Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order: %s", order.OrderNumber))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("02 Jan 2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(12)

	for _, it := range order.Items {
		pdf.Cell(0, 7, fmt.Sprintf("%s  x%d @ %.2f = %.2f", it.Name, it.Quantity, it.UnitPrice, it.Total))
		pdf.Ln(7)
	}
	pdf.Ln(5)
	pdf.Cell(0, 7, fmt.Sprintf("Subtotal: %.2f", order.Subtotal))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Shipping: %.2f", order.ShippingCost))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Platform fee: %.2f", order.PlatformFee))
	pdf.Ln(7)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", order.Total))
	pdf.Ln(12)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 80, pdf.GetY(), 50, 50, false, opts, 0, "")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", order.OrderNumber))
	if err := pdf.Output(w); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render receipt")
	}
}
