package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/gocarina/gocsv"
)

func bankFileName(month time.Time) string {
	return fmt.Sprintf("BankTransfer_%s.csv", month.Format("200601"))
}

// renderBankFile writes one transfer row per entry. Account numbers are opened from the
// sealed snapshot taken when the entry was computed.
func (s *PayrollServiceImpl) renderBankFile(batch payroll.Batch, entries []payroll.Entry, on time.Time) (payroll.BankFile, error) {
	rows := make([]payroll.BankTransferRow, 0, len(entries))
	for _, e := range entries {
		account, err := s.box.Open(e.BankAccountNumber)
		if err != nil {
			return payroll.BankFile{}, fmt.Errorf("failed to open bank account of employee %s: %w", e.EmployeeID, err)
		}
		rows = append(rows, payroll.BankTransferRow{
			EmployeeName:    e.EmployeeName,
			AccountNumber:   account,
			IFSCCode:        e.IFSCCode,
			NetSalary:       e.NetSalary.StringFixed(2),
			TransactionDate: on.Format("2006-01-02"),
		})
	}

	content, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return payroll.BankFile{}, fmt.Errorf("failed to render bank file: %w", err)
	}

	return payroll.BankFile{
		FileName: bankFileName(batch.Month),
		Content:  content,
	}, nil
}
