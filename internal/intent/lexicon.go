package intent

// CategoryKeywords maps one category to the phrases that suggest it.
// The tables are plain data so a new locale or category is a data change,
// not a code change.
type CategoryKeywords struct {
	Category string
	Keywords []string
}

// Lexicon holds every keyword table the parser consults. Callers that need
// another locale build their own Lexicon and pass it to NewParser.
type Lexicon struct {
	Income     []string
	Balance    []string
	Summary    []string
	LeadVerbs  []string
	Categories []CategoryKeywords
}

// DefaultLexicon is the Spanish / LATAM set shipped with the product.
var DefaultLexicon = Lexicon{
	Income: []string{
		"ingreso", "recibí", "recibi", "gane", "gané", "salario",
		"sueldo", "pago", "transferencia", "freelance", "bono",
	},
	Balance: []string{"balance", "saldo", "cuanto tengo", "cuánto tengo"},
	Summary: []string{"resumen", "como voy", "cómo voy", "reporte", "mes"},
	LeadVerbs: []string{
		"gaste", "gasté", "pague", "pagué", "compre", "compré",
		"en", "de", "por",
	},
	Categories: []CategoryKeywords{
		{Category: "Alimentación", Keywords: []string{"almuerzo", "cena", "desayuno", "comida", "restaurante", "mercado", "supermercado"}},
		{Category: "Transporte", Keywords: []string{"taxi", "uber", "gasolina", "bus", "metro", "transporte", "parqueadero"}},
		{Category: "Vivienda", Keywords: []string{"arriendo", "alquiler", "administración"}},
		{Category: "Servicios", Keywords: []string{"luz", "agua", "gas", "internet", "telefono", "celular"}},
		{Category: "Entretenimiento", Keywords: []string{"netflix", "spotify", "cine", "bar", "fiesta"}},
		{Category: "Salud", Keywords: []string{"medicina", "medico", "farmacia", "doctor", "hospital"}},
		{Category: "Compras", Keywords: []string{"ropa", "zapatos", "tienda"}},
	},
}
