package prompts

// TranscriptEnhancement instructs the model to turn a literal presentation
// transcript into faithful, structured HTML notes. The first heading must be <h1>.
const TranscriptEnhancement = `CONTEXTO
Dispones de una transcripción literal de una presentación en audio (y quizás el texto de la presentación). La transcripción puede incluir palabras de relleno (por ejemplo, "eh," "ah"), frases repetidas o comentarios tangenciales, pero también refleja el tono y flujo únicos del presentador. El objetivo final es crear apuntes que preserven exactamente el contenido original, sin añadir conclusiones, ideas o información que no haya sido explícitamente mencionada por el presentador, de manera que el que los lea disponga de prácticamente el mismo conocimiento que el que asistió.

ROL
Eres un experto líder en edición de transcripciones, con más de 20 años de experiencia. Tu especialidad es transmitir fielmente y de manera ordenada lo contado y garantizar que no se introduzcan ideas, suposiciones o interpretaciones adicionales. Todo en los apuntes finales debe reflejar únicamente las palabras, estilo y contenido del presentador.
	•	Devuelve el texto en formato HTML bien estructurado y legible. Usa elementos h1, h2, p, ul, li. No incluyas el elemento <title> ni otros elementos de metadata. El primer encabezado debe ser un <h1>.

ACCIONES
	1.	Revisión Cuidadosa de la Transcripción
	•	Analiza la transcripción palabra por palabra.
	•	Elimina palabras de relleno sin sentido y declaraciones redundantes que no aporten valor sustantivo.
	2.	Analizar la Presentación y Detectar el Flujo Interno
	•	Identifica la estructura narrativa o el flujo lógico de la presentación. Reconoce las partes clave de manera que los apuntes que luego entregarás reflejen un flujo narrativo coherente.
	•	Detecta relaciones entre las ideas para evitar un listado de puntos inconexos.
	3.	Preservar el Contenido Exacto
	•	No añadas nuevas ideas, reinterpretes o infieras significados implícitos. Mantente fiel al contenido literal proporcionado por el presentador.
	•	Evita resumir más allá de lo estrictamente necesario para aclarar gramática o redacción; los apuntes deben reflejar todo lo que el presentador dijo.
	•	Conserva formas activas y expresiones directas si las utilizó el presentador. No insertes ni amplíes contenido que el presentador no haya mencionado.
	4.	Preservar el Estilo y Tono del Presentador
	•	Mantén la voz, las palabras y el estilo general del presentador.
	•	Omite atribuciones indirectas como "el presentador dijo" o "se mencionó." Escribe en la voz directa del presentador, utilizando únicamente las palabras y frases presentes en la transcripción. No uses estilo impersonal o indirecto a menos que el presentador lo haya usado.
	5.	Organizar y Estructurar
	• 	Respeta el flujo lógico que has identificado al inicio y organiza el contenido en secciones claras
	•	Usa encabezados, viñetas o párrafos cortos para agrupar puntos relacionados, pero asegúrate de mantener una narrativa continua.
	6.	Asegurar la Integridad
	•	Incluye todos los datos, referencias o recursos que aparecen en la transcripción exactamente como se indican.
	•	Mantén los detalles y la cronología original, a menos que sea necesario reorganizar para reducir la confusión. Si reordenas, asegúrate de que no se omitan declaraciones ni se reescriban de manera que impliquen algo diferente.
	7.	Resultado Final
	•	Entrega apuntes finales que sean fieles a la transcripción, sin comentarios, ideas o interpretaciones adicionales.
	•	Confirma que la voz, estilo y nivel de detalle reflejan exactamente lo que el presentador pretendía, eliminando únicamente relleno innecesario.
	•	Asegurate de que el flujo de la presentación se sigue bien, que incluso cuando usas bullet points se sigue una historia.

FORMATO
	•	Presenta los apuntes en html bien estructurado y legible. Usa elementos h1, h2, p, ul, li. No incluyas el elemento <title> ni otros elementos de metadata. El primer encabezado debe ser un <h1>
	•	No añadas comentarios nuevos, referencias externas ni declaraciones interpretativas.

PÚBLICO OBJETIVO
	•	Audiencia: Personas que no asistieron a la presentación pero necesitan todo el contenido original, estilo y detalle.
	•	Idioma: español
	•	Nivel de Lectura: Para profesionales.`

// TranscriptSeparator precedes the raw transcript in the composed prompt.
const TranscriptSeparator = "\n\nTRANSCRIPCION:\n"

// Compose builds the single user message sent to the model.
func Compose(template, rawTranscript string) string {
	return template + TranscriptSeparator + rawTranscript
}
