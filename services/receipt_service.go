package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/anjiri1684/institute_backoffice/configs"
	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/anjiri1684/institute_backoffice/notifications"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GenerateAndSendReceipt renders the receipt PDF for a completed payment,
// stores its URL on the payment row and emails it to the student. Runs in a
// goroutine off the payment handler; failures are logged, never surfaced.
func GenerateAndSendReceipt(payment models.Payment, student models.Student) {
	if payment.Status != models.PaymentCompleted {
		return
	}

	url, err := GenerateReceiptPDF(payment, student)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt for payment %s: %v", payment.ID, err)
		return
	}

	payment.ReceiptURL = &url
	if err := database.DB.Save(&payment).Error; err != nil {
		log.Printf("🔥 Failed to save receipt URL for payment %s: %v", payment.ID, err)
		return
	}

	if student.Email != nil {
		notifications.SendEmail(
			student.FullName,
			*student.Email,
			fmt.Sprintf("Payment Receipt %s", payment.ReceiptNumber),
			fmt.Sprintf("<h1>Payment Received</h1><p>We have received your payment of %.2f. Your receipt is available <a href='%s'>here</a>. Outstanding balance: %.2f.</p>",
				payment.Amount, url, student.FeeDue),
		)
	}

	log.Printf("✅ Generated receipt %s for student %s.", payment.ReceiptNumber, student.ID)
}

// GenerateReceiptPDF renders the receipt template to PDF and uploads it,
// returning the hosted URL.
func GenerateReceiptPDF(payment models.Payment, student models.Student) (string, error) {
	htmlData, err := renderReceiptHTML(payment, student)
	if err != nil {
		return "", err
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		return "", err
	}

	return uploadToCloudinary(pdfBytes, payment.ReceiptNumber)
}

func renderReceiptHTML(payment models.Payment, student models.Student) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	data := struct {
		ReceiptNumber string
		StudentName   string
		Amount        string
		PaymentDate   string
		PaymentMethod string
		FeePaid       string
		FeeDue        string
	}{
		ReceiptNumber: payment.ReceiptNumber,
		StudentName:   student.FullName,
		Amount:        fmt.Sprintf("%.2f", payment.Amount),
		PaymentDate:   payment.PaymentDate.Format("January 2, 2006"),
		PaymentMethod: payment.PaymentMethod,
		FeePaid:       fmt.Sprintf("%.2f", student.FeePaid),
		FeeDue:        fmt.Sprintf("%.2f", student.FeeDue),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, receiptNumber string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", receiptNumber, uuid.New().String()),
		Folder:       "institute_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
