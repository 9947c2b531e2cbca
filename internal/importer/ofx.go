package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/panpantou/stash/internal/common"
	"github.com/panpantou/stash/internal/model"
)

// OFXParser imports account ledger balances from an OFX/QFX statement
// file. Each statement in the file contributes one account balance; all
// balances merge into a single snapshot dated at the latest balance
// as-of date.
type OFXParser struct{}

// NewOFXParser creates a new OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagRegex  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues seen in bank exports:
// leading blank lines before the header, mixed-case SEVERITY values, and
// SGML-style opening tags missing their closing bracket.
func (p *OFXParser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagRegex.ReplaceAllString(content, "$1>")
	return content
}

// Parse reads an OFX/QFX file and returns one snapshot holding the
// ledger balance of every statement in it.
func (p *OFXParser) Parse(ctx context.Context, reader io.Reader) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var accounts []model.AccountBalance
	var asOf time.Time

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		amount, _ := stmt.BalAmt.Float64()
		category := model.CategoryCurrent
		if strings.EqualFold(stmt.BankAcctFrom.AcctType.String(), "SAVINGS") {
			category = model.CategorySavings
		}
		accounts = append(accounts, model.NewAccountBalance(string(stmt.BankAcctFrom.AcctID), amount, category))
		if stmt.DtAsOf.Time.After(asOf) {
			asOf = stmt.DtAsOf.Time
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		// Card ledger balances report debt owed, so they enter negated.
		amount, _ := stmt.BalAmt.Float64()
		accounts = append(accounts, model.NewAccountBalance(string(stmt.CCAcctFrom.AcctID), -amount, model.CategoryCurrent))
		if stmt.DtAsOf.Time.After(asOf) {
			asOf = stmt.DtAsOf.Time
		}
	}

	if len(accounts) == 0 {
		return model.Snapshot{}, common.ErrEmptyImport
	}

	slog.Debug("parsed OFX balances", "accounts", len(accounts), "as_of", asOf)

	return model.NewSnapshot(asOf, accounts), nil
}
