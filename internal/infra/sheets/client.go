package sheets

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/allycar/outreach/internal/entity"
)

// Colunas da planilha de leads: A=Name B=Phone C=City D=Country
// E=Status F=LastSentAt. A linha 1 é o cabeçalho.
const (
	statusColumn = "E"
	sentAtColumn = "F"
)

type Client struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
	sheetName     string
}

// NewClient autentica com a Service Account e valida o acesso à
// planilha. Qualquer falha aqui é erro de configuração: aborta a subida.
func NewClient(ctx context.Context, credentialsJSON []byte, spreadsheetID, readRange string) (*Client, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("falha ao criar cliente do Google Sheets: %w", err)
	}

	if _, err := service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("planilha %s inacessível: %w", spreadsheetID, err)
	}

	sheetName := "Sheet1"
	if idx := strings.Index(readRange, "!"); idx > 0 {
		sheetName = readRange[:idx]
	}

	log.Printf("✅ Conectado ao Google Sheets (%s)", spreadsheetID)

	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		sheetName:     sheetName,
	}, nil
}

// FetchLeads lê todas as linhas de dados em ordem da planilha.
func (c *Client) FetchLeads(ctx context.Context) ([]entity.Lead, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler leads da planilha: %w", err)
	}

	leads := make([]entity.Lead, 0, len(resp.Values))
	for i, row := range resp.Values {
		leads = append(leads, entity.Lead{
			Row:        i + 2, // dados começam na linha 2
			Name:       cell(row, 0),
			Phone:      cell(row, 1),
			City:       cell(row, 2),
			Country:    cell(row, 3),
			Status:     cell(row, 4),
			LastSentAt: cell(row, 5),
		})
	}

	return leads, nil
}

func (c *Client) UpdateStatus(ctx context.Context, row int, status string) error {
	return c.updateCell(ctx, statusColumn, row, status)
}

func (c *Client) UpdateSentAt(ctx context.Context, row int, sentAt string) error {
	return c.updateCell(ctx, sentAtColumn, row, sentAt)
}

func (c *Client) updateCell(ctx context.Context, column string, row int, value string) error {
	cellRange := fmt.Sprintf("%s!%s%d", c.sheetName, column, row)
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}

	_, err := c.service.Spreadsheets.Values.
		Update(c.spreadsheetID, cellRange, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("erro ao atualizar %s: %w", cellRange, err)
	}
	return nil
}

// cell tolera linhas curtas e células não textuais (telefones chegam
// como número quando a coluna não está formatada como texto).
func cell(row []interface{}, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[index]))
}
