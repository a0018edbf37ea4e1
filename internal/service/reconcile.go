package service

// ReconcileBalances recalculates the cached balance of every account from
// its ledger. Run nightly by the cron schedule; concurrent writers can make
// a balance drift, and this is the eventual correction.
func (s *Service) ReconcileBalances() error {
	ids, err := s.store.ListAccountIDs()
	if err != nil {
		return err
	}

	failed := 0
	for _, id := range ids {
		if _, err := s.store.RecalculateBalance(id); err != nil {
			s.log.Errorf("Reconciliation failed for account %d: %v", id, err)
			failed++
		}
	}

	s.log.Infof("Reconciled %d accounts (%d failed)", len(ids)-failed, failed)
	return nil
}
