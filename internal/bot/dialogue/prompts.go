package dialogue

// Outbound copy. The conversation runs in Spanish, matching the audience of
// the lending business.
const (
	msgMenu = "Hola, soy el asistente de créditos ACV. ¿En qué te puedo ayudar?\n" +
		"1. Solicitar un préstamo con garantía\n" +
		"2. Conocer los requisitos\n" +
		"3. Hablar con un asesor\n" +
		"Responde con el número de la opción."

	msgMenuRetry = "No entendí tu respuesta. Elige 1, 2 o 3."

	msgPendingRequest = "Ya tenemos una solicitud abierta a tu nombre. " +
		"Un asesor se pondrá en contacto contigo; si necesitas empezar de nuevo, escribe 'menu'."

	msgAskKind = "¿Qué bien dejarías en garantía?\n" +
		"1. Auto\n" +
		"2. Maquinaria pesada\n" +
		"3. Reloj de lujo\n" +
		"4. Otro"

	msgKindRetry = "Elige una opción de la lista (1 a 4)."

	msgKindOther = "Por el momento solo trabajamos con autos, maquinaria pesada y relojes de lujo. " +
		"Gracias por tu interés."

	msgAskYear   = "¿De qué año es? Escribe el año con 4 dígitos, por ejemplo 2020."
	msgYearRetry = "Necesito el año con 4 dígitos, por ejemplo 2020."

	msgAskAmount   = "¿Qué monto necesitas? Puedes escribirlo como 150000 o $150,000."
	msgAmountRetry = "No pude leer el monto. Escríbelo en números, por ejemplo 150000."

	msgAskConsent = "Para continuar, el bien quedaría bajo resguardo en nuestras instalaciones " +
		"durante el plazo del préstamo. ¿Estás de acuerdo? (sí/no)"
	msgConsentRetry = "¿Me confirmas con sí o no?"
	msgNoConsent    = "Entendido. Sin el resguardo del bien no podemos continuar con la solicitud. " +
		"Gracias por tu interés."

	msgAskName   = "¿Cuál es tu nombre completo?"
	msgNameRetry = "Necesito tu nombre y apellido, por ejemplo: Juan Pérez."

	msgAskLocation   = "¿En qué ciudad te encuentras?"
	msgLocationRetry = "No reconocí la ciudad. Escríbela de nuevo, por favor."

	msgAskPhotos = "¡Listo! Para terminar, envíame %d fotos del bien en garantía " +
		"(frente, atrás y los detalles que consideres importantes)."

	msgPhotosOnlyImages = "Solo puedo recibir fotos (JPG o PNG). Inténtalo de nuevo."
	msgPhotosPending    = "Gracias, ya tengo %d de %d fotos. Envíame las que faltan."
	msgPhotosReminder   = "Sigo esperando tus fotos. Envíame %d fotos del bien para terminar tu solicitud."
	msgPhotosEarly      = "Aún no necesito fotos. Continuemos con la solicitud."

	msgCompleted = "¡Recibimos tus fotos! Tu solicitud quedó registrada y un asesor " +
		"se pondrá en contacto contigo muy pronto. Gracias."

	msgRequirements = "Para solicitar un préstamo necesitas:\n" +
		"- Identificación oficial vigente\n" +
		"- Factura o comprobante de propiedad del bien\n" +
		"- El bien queda en resguardo durante el plazo\n" +
		"¿Te gustaría iniciar una solicitud? (sí/no)"
	msgRequirementsRetry = "¿Te gustaría iniciar una solicitud? Responde sí o no."

	msgAdvisorAskName = "Con gusto. ¿Me compartes tu nombre completo para que un asesor te contacte?"
	msgAdvisorDone    = "Gracias. Un asesor se pondrá en contacto contigo en horario de atención."

	msgNotViable = "Gracias por tu interés. Por ahora no podemos ofrecerte un préstamo con esas " +
		"características."

	msgCancelled = "He cancelado tu solicitud. Escríbeme cuando quieras empezar de nuevo."

	msgSummaryEmpty = "Aún no tengo datos de tu solicitud."
)
