package criteria

// DefaultCatalog maps criterion titles to their category. The migration
// engine inherits the category of a successor criterion from this table and
// falls back to CategoryImported for titles it does not know.
func DefaultCatalog() map[string]string {
	return map[string]string{
		"Sentimento de Dono":           CategoryBehavior,
		"Resiliência nas adversidades": CategoryBehavior,
		"Organização no Trabalho":      CategoryBehavior,
		"Capacidade de aprender":       CategoryBehavior,
		`Ser "team player"`:            CategoryBehavior,

		"Entregar com qualidade": CategoryExecution,
		"Atender aos prazos":     CategoryExecution,
		"Fazer mais com menos":   CategoryExecution,
		"Pensar fora da caixa":   CategoryExecution,

		"Gente":                   CategoryManagement,
		"Resultados":              CategoryManagement,
		"Evolução da Rocket Corp": CategoryManagement,
	}
}
