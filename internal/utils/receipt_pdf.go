package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateTrackingQR génère le QR de suivi d'une commande en base64,
// prêt à mettre dans un <img src="...">
func GenerateTrackingQR(orderID string) (string, error) {
	base := os.Getenv("FRONTEND_TRACKING_URL")
	if base == "" {
		base = "http://localhost:3000/orders"
	}
	trackURL := fmt.Sprintf("%s/%s", base, orderID)

	png, err := qrcode.Encode(trackURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderReceiptPDF charge la page de reçu du front et l'imprime en PDF.
// frontendURL doit ressembler à http://localhost:3000/receipt
func RenderReceiptPDF(frontendURL, orderID, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", orderID)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// GetFrontendReceiptBaseURL — URL du front (reçu) depuis l'env
func GetFrontendReceiptBaseURL() string {
	u := os.Getenv("FRONTEND_RECEIPT_URL")
	if u == "" {
		// fallback dev local
		return "http://localhost:3000/receipt"
	}
	return u
}
