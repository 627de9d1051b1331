package locale

import "github.com/abhisek/ideaforge/internal/pipeline"

var spanish = &Catalog{
	Welcome:     "Vamos a pulir tu idea: %q. Recorreremos %d temas juntos, una pregunta a la vez.",
	ExpandIdea:  "Antes de empezar, algunas cosas en las que vale la pena pensar:",
	Apology:     "Perdón, tuve problemas para preparar una pregunta a tu medida. Sigamos con esta.",
	ModuleDone:  "Genial, eso deja clara la parte de %s.",
	NeutralAck:  "Gracias, anotado. Sigamos.",
	Celebration: "¡Listo! Tu idea ya cubre el problema, el cliente, la propuesta de valor, el modelo de ingresos y la ventaja competitiva.",
	TipPrefix:   "Consejo:",

	ModuleNames: map[pipeline.ModuleID]string{
		pipeline.ProblemDefinition:    "definición del problema",
		pipeline.TargetCustomer:       "cliente objetivo",
		pipeline.ValueProposition:     "propuesta de valor",
		pipeline.RevenueModel:         "modelo de ingresos",
		pipeline.CompetitiveAdvantage: "ventaja competitiva",
	},
	Questions: map[pipeline.ModuleID]string{
		pipeline.ProblemDefinition:    "¿Qué problema concreto resuelve tu idea y quién lo sufre con más frecuencia?",
		pipeline.TargetCustomer:       "¿Quién es tu cliente objetivo? Descríbelo de la forma más concreta posible.",
		pipeline.ValueProposition:     "¿Qué hace que tu solución sea valiosa para ese cliente frente a lo que hace hoy?",
		pipeline.RevenueModel:         "¿Cómo va a generar ingresos tu idea? ¿Quién paga, cuánto y con qué frecuencia?",
		pipeline.CompetitiveAdvantage: "¿Qué hará difícil que la competencia te copie?",
	},
	FollowUps: map[pipeline.ModuleID]string{
		pipeline.ProblemDefinition:    "¿Puedes dar un ejemplo concreto de cuándo ocurre este problema y qué le cuesta a quien lo sufre?",
		pipeline.TargetCustomer:       "¿Puedes acotarlo más? Piensa en edad, ubicación, trabajo o la situación en la que están.",
		pipeline.ValueProposition:     "¿Cuál es el beneficio más importante y cómo lo mediría un cliente?",
		pipeline.RevenueModel:         "¿Puedes poner números aproximados, como el precio y la cantidad esperada de clientes que pagan?",
		pipeline.CompetitiveAdvantage: "¿Qué alternativas existentes se parecen más y qué tienes tú que ellas no tengan?",
	},

	NarrativeOpening: "La idea: %s.",
	Connectives: map[pipeline.ModuleID]string{
		pipeline.ProblemDefinition:    "Parte de un problema real: %s.",
		pipeline.TargetCustomer:       "Quienes más lo sufren son %s.",
		pipeline.ValueProposition:     "Lo que les ofrece: %s.",
		pipeline.RevenueModel:         "Genera ingresos mediante %s.",
		pipeline.CompetitiveAdvantage: "Y lo que la distingue: %s.",
	},

	Quality: QualityCopy{
		SpecificTerms: []string{
			"problema", "cliente", "usuario", "ingreso", "mercado", "precio", "suscripción",
			"suscripcion", "tarifa", "pago", "costo", "coste", "ganancia", "margen", "competidor",
			"competencia", "ventaja", "segmento", "nicho", "valor", "solución", "solucion",
			"comisión", "comision", "socio", "exclusiv", "negocio", "b2b", "b2c",
		},
		GenericTerms: []string{"app", "aplicación", "aplicacion", "servicio", "plataforma", "web", "herramienta", "sistema"},

		IssueTooShort:      "El texto es muy corto.",
		IssueBrief:         "El texto es breve y omite detalles.",
		IssueFewWords:      "Se usaron muy pocas palabras.",
		IssueGeneric:       "Usa términos genéricos como \"app\" o \"plataforma\" sin decir qué es lo específico.",
		IssueNoSpecifics:   "No se mencionan términos de negocio concretos.",
		SuggestElaborate:   "Descríbelo en al menos una o dos oraciones completas.",
		SuggestMoreDetail:  "Agrega un ejemplo concreto o una cifra.",
		SuggestWhoAndWhy:   "Di para quién es y por qué lo necesitan.",
		SuggestBeSpecific:  "Sustituye los términos genéricos por lo que el producto hace realmente.",
		SuggestBusinessTie: "Menciona el problema, el cliente o cómo gana dinero.",
	},
}
